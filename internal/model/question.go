// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Question structure and the ordered List that a session
// walks through. It is the format-agnostic core of the domain model.
//
// Why a format-agnostic model?
//
// Questions can arrive from very different places: decoded from HCL deck files
// on disk, or pushed over a Socket.IO feed as loosely-typed JSON. Both loaders
// translate into this package, so the controller, the executor and the
// derivation logic never see an hcl.Expression or a raw socket payload. The
// model captures only what the session machinery needs: identity, prompt,
// answer shape, and order.
package model

// Question is a single entry in a deck.
type Question struct {
	// ID is the user-chosen label of the question block, unique within a deck.
	ID string

	// Prompt is the text presented when the question is current.
	Prompt string

	// AnswerType names the expected answer shape ("string", "number", "bool").
	AnswerType string

	// Options holds the selectable answers. Empty for free-form questions.
	Options []string
}

// Equal reports whether two questions are identical field by field.
func (q Question) Equal(other Question) bool {
	if q.ID != other.ID || q.Prompt != other.Prompt || q.AnswerType != other.AnswerType {
		return false
	}
	if len(q.Options) != len(other.Options) {
		return false
	}
	for i := range q.Options {
		if q.Options[i] != other.Options[i] {
			return false
		}
	}
	return true
}

// List is the ordered sequence of questions for one session.
type List []Question

// Equal reports whether two lists hold the same questions in the same order.
// Sources use this to suppress re-emissions of an unchanged list.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// EphemeralQuestion is the derived view of the question currently shown. It
// wraps one entry of a List together with its position.
type EphemeralQuestion struct {
	Question Question
	Index    int
}
