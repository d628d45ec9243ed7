package socketiosource

import (
	"encoding/json"
	"fmt"

	"github.com/vk/quizgridgo/internal/model"
)

// wireQuestion is the JSON shape a feed event carries per question.
type wireQuestion struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	AnswerType string   `json:"answer_type"`
	Options    []string `json:"options"`
}

// DecodeList converts a raw event payload into a question list. Socket.IO
// hands payloads over as loosely-typed values, so the payload is normalized
// through a JSON round-trip: anything that marshals to an array of question
// objects is accepted.
func DecodeList(payload any) (model.List, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payload is not serializable: %w", err)
	}

	var wire []wireQuestion
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("payload is not a question array: %w", err)
	}

	list := make(model.List, 0, len(wire))
	for i, q := range wire {
		if q.Prompt == "" {
			return nil, fmt.Errorf("question %d has no prompt", i)
		}
		if q.AnswerType == "" {
			q.AnswerType = "string"
		}
		list = append(list, model.Question{
			ID:         q.ID,
			Prompt:     q.Prompt,
			AnswerType: q.AnswerType,
			Options:    q.Options,
		})
	}
	return list, nil
}
