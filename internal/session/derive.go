package session

import (
	"errors"

	"github.com/vk/quizgridgo/internal/asyncresult"
	"github.com/vk/quizgridgo/internal/model"
)

// ErrEmptyList indicates that a question list arrived but contains no entries,
// so there is no current question to derive.
var ErrEmptyList = errors.New("question list is empty")

// DeriveCurrent computes the question currently shown for the given state.
//
// Before the question list has arrived the derivation is Pending, never a
// failure. Once initialized, the current question is always the first entry of
// the list. There is no advancement logic: the upstream feed only ever
// surfaces the first item, and this derivation mirrors that literally instead
// of inventing pagination.
//
// DeriveCurrent is pure: it reads state and returns a result, nothing else.
func DeriveCurrent(state *State) asyncresult.Result[model.EphemeralQuestion] {
	if state == nil || !state.Initialized {
		return asyncresult.Pending[model.EphemeralQuestion]()
	}
	if len(state.Questions) == 0 {
		return asyncresult.Fail[model.EphemeralQuestion](ErrEmptyList)
	}
	return asyncresult.Ok(model.EphemeralQuestion{
		Question: state.Questions[0],
		Index:    0,
	})
}
