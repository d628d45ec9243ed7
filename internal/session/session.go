// Package session holds the mutable record of one active question run and the
// pure derivation of the currently-shown question.
//
// A State is exclusively owned by the executor goroutine that created it; the
// package itself contains no locking. Everything else in the system interacts
// with session state by submitting commands or reading the derived cells.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/vk/quizgridgo/internal/model"
)

// Identity is the opaque token minted when a session begins. Commands carry
// the identity of the session they target; the executor drops commands whose
// identity no longer matches the live session.
type Identity string

// NewIdentity mints a random session identity.
func NewIdentity() (Identity, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate session identity: %w", err)
	}
	return Identity(hex.EncodeToString(buf[:])), nil
}

// State is the mutable record of one active session.
//
// Questions is unreadable until Initialized is true; DeriveCurrent encodes
// that rule by yielding Pending instead of touching the list.
type State struct {
	Identity    Identity
	Initialized bool
	Questions   model.List
}

// NewState creates session state bound to an identity, with no question list
// received yet.
func NewState(id Identity) *State {
	return &State{Identity: id}
}
