/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package authstore persists the session slots: credential, principal,
// role and the authenticated flag.
//
// Single-slot Set and Clear are last-write-wins with no ordering across
// slots; a crash between two of them can leave, for example, the
// authenticated flag set while the credential is absent. Callers that
// change more than one slot use Update, which every backend applies
// atomically.
package authstore

import (
	"errors"
	"fmt"
)

// Slot names one of the fixed values held by a Store
type Slot string

const (
	SlotCredential    Slot = "credential"
	SlotPrincipal     Slot = "principal"
	SlotRole          Slot = "role"
	SlotAuthenticated Slot = "authenticated"
)

// Slots lists every slot in a stable order
var Slots = []Slot{SlotCredential, SlotPrincipal, SlotRole, SlotAuthenticated}

var ErrUnknownSlot = errors.New("unknown slot")

// Writer is the mutating half of a Store, also handed to Update callbacks.
// Setting a slot to the empty string clears it in every backend.
type Writer interface {
	Set(slot Slot, value string) error
	Clear(slot Slot) error
}

// Store is implemented by every backend
type Store interface {
	Writer
	Get(slot Slot) (string, bool)
	ClearAll() error
	// Update runs fn and applies all of its writes together, or none of
	// them if fn returns an error
	Update(fn func(w Writer) error) error
}

func (s Slot) valid() bool {
	switch s {
	case SlotCredential, SlotPrincipal, SlotRole, SlotAuthenticated:
		return true
	}
	return false
}

func checkSlot(s Slot) error {
	if !s.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, string(s))
	}
	return nil
}

// ClearSession terminates the session in one atomic write: credential,
// principal and role are removed and the authenticated flag is set false
func ClearSession(s Store) error {
	return s.Update(func(w Writer) error {
		for _, slot := range []Slot{SlotCredential, SlotPrincipal, SlotRole} {
			if err := w.Clear(slot); err != nil {
				return err
			}
		}
		return w.Set(SlotAuthenticated, "false")
	})
}
