// Package command defines the units of work submitted to the session
// executor.
//
// Commands are plain data. Keeping them as values makes the executor's
// dispatch deterministic and lets tests drive the worker loop directly. Each
// variant carries the identity of the session it targets; variants that need
// an acknowledgment carry a result sink the executor resolves when the
// command has been applied.
package command

import (
	"errors"

	"github.com/vk/quizgridgo/internal/asyncresult"
	"github.com/vk/quizgridgo/internal/model"
	"github.com/vk/quizgridgo/internal/session"
	"github.com/vk/quizgridgo/internal/statecell"
)

// ErrUnsupported marks a reserved command that is not wired to behavior yet.
// It is distinct from a processing fault so tests can tell "not implemented"
// apart from a genuine bug.
var ErrUnsupported = errors.New("command not supported yet")

// AckSink is the cell a command resolves once it has been applied.
type AckSink = *statecell.Cell[asyncresult.Result[asyncresult.Unit]]

// Command is the sealed set of operations the executor understands.
type Command interface {
	// Session returns the identity of the session this command targets.
	Session() session.Identity

	isCommand()
}

// Initialize allocates session state bound to the session identity, runs the
// first derivation, and resolves Sink with the outcome.
type Initialize struct {
	ID   session.Identity
	Sink AckSink
}

// ReceiveQuestionList delivers a (possibly re-emitted) question list from the
// upstream source. Lists equal to the one already stored do not trigger a
// re-derivation.
type ReceiveQuestionList struct {
	ID   session.Identity
	List model.List
}

// RecomputeAndNotify re-derives the current question from session state and
// republishes it.
type RecomputeAndNotify struct {
	ID session.Identity
}

// Reserved variants. The executor resolves their sinks with a Failure wrapping
// ErrUnsupported; they exist so callers compile against the full command
// surface before the behavior lands.
type (
	// FinishSession will end the active session.
	FinishSession struct {
		ID   session.Identity
		Sink AckSink
	}
	// MoveNext will advance to the next question.
	MoveNext struct {
		ID   session.Identity
		Sink AckSink
	}
	// MovePrevious will return to the previous question.
	MovePrevious struct {
		ID   session.Identity
		Sink AckSink
	}
	// SubmitAnswer will record an answer for the current question.
	SubmitAnswer struct {
		ID     session.Identity
		Answer string
		Sink   AckSink
	}
	// SavePartial will persist an in-progress session.
	SavePartial struct {
		ID   session.Identity
		Sink AckSink
	}
	// SaveFull will persist a completed session.
	SaveFull struct {
		ID   session.Identity
		Sink AckSink
	}
)

func (c Initialize) Session() session.Identity          { return c.ID }
func (c ReceiveQuestionList) Session() session.Identity { return c.ID }
func (c RecomputeAndNotify) Session() session.Identity  { return c.ID }
func (c FinishSession) Session() session.Identity       { return c.ID }
func (c MoveNext) Session() session.Identity            { return c.ID }
func (c MovePrevious) Session() session.Identity        { return c.ID }
func (c SubmitAnswer) Session() session.Identity        { return c.ID }
func (c SavePartial) Session() session.Identity         { return c.ID }
func (c SaveFull) Session() session.Identity            { return c.ID }

func (Initialize) isCommand()          {}
func (ReceiveQuestionList) isCommand() {}
func (RecomputeAndNotify) isCommand()  {}
func (FinishSession) isCommand()       {}
func (MoveNext) isCommand()            {}
func (MovePrevious) isCommand()        {}
func (SubmitAnswer) isCommand()        {}
func (SavePartial) isCommand()         {}
func (SaveFull) isCommand()            {}

// Sink extracts the ack sink from a command, if the variant carries one.
func Sink(cmd Command) (AckSink, bool) {
	switch c := cmd.(type) {
	case Initialize:
		return c.Sink, c.Sink != nil
	case FinishSession:
		return c.Sink, c.Sink != nil
	case MoveNext:
		return c.Sink, c.Sink != nil
	case MovePrevious:
		return c.Sink, c.Sink != nil
	case SubmitAnswer:
		return c.Sink, c.Sink != nil
	case SavePartial:
		return c.Sink, c.Sink != nil
	case SaveFull:
		return c.Sink, c.Sink != nil
	default:
		return nil, false
	}
}
