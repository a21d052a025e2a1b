/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package state implements the symbolic operand stack and local variable
// table (spec §4.4): ordered sequences of typed slot entries with
// wide-slot semantics, the working state the method analyzer mutates as
// it walks a method's instructions.
package state

import "github.com/archive-inital/asm/frame"

// Slot is one working stack or local-variable entry: spec §4.4's
// "(declared-type-class, producing-frame, optional-init-type-descriptor,
// isThis, isInitialized)". It is the mutable counterpart of frame.Value,
// the immutable snapshot recorded once a Frame is built from it.
type Slot struct {
	Value         frame.Value
	Producer      *frame.Frame
	InitDesc      string // NEW-site type descriptor, for Uninitialized values
	IsThis        bool
	IsInitialized bool

	// wideMarker is true only for the synthetic second-word placeholder a
	// wide (Long/Double) push occupies. Spec §9 prefers this explicit
	// marker over duplicating the primary slot: "fewer equality bugs, same
	// behavior."
	wideMarker bool
}

// IsWideMarker reports whether this slot is the placeholder half of a
// wide value rather than the value itself.
func (s Slot) IsWideMarker() bool { return s.wideMarker }

// NilSlot is the placeholder used to grow the LVT to an index that was
// never explicitly stored (spec §4.4, local.ensure).
var NilSlot = Slot{Value: frame.Value{Type: frame.Top}}

func wideMarkerSlot() Slot {
	return Slot{Value: frame.Value{Type: frame.Top}, wideMarker: true}
}
