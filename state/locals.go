/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package state

import "github.com/archive-inital/asm/frame"

// Locals is the working local-variable table. Unlike Stack it is
// index-addressed rather than push/pop-addressed, and grows lazily as
// higher indices are first touched (spec §4.4, local.ensure).
type Locals struct {
	slots []Slot
}

// NewLocals returns an empty LVT.
func NewLocals() *Locals { return &Locals{} }

// Ensure grows the table so index i is addressable, filling any newly
// created indices with NilSlot.
func (l *Locals) Ensure(i int) {
	for len(l.slots) <= i {
		l.slots = append(l.slots, NilSlot)
	}
}

// Get returns the slot at index i, or NilSlot if i has never been
// touched.
func (l *Locals) Get(i int) Slot {
	if i < 0 || i >= len(l.slots) {
		return NilSlot
	}
	return l.slots[i]
}

// Set stores a single category-1 slot at index i.
func (l *Locals) Set(i int, v Slot) {
	l.Ensure(i)
	l.slots[i] = v
}

// SetWide stores a category-2 (LONG/DOUBLE) slot at index i and its
// placeholder at i+1, the pair spec §4.4 says "occupies indices n and
// n+1; reading or writing them uses the pair."
func (l *Locals) SetWide(i int, v Slot) {
	l.Ensure(i + 1)
	l.slots[i] = v
	l.slots[i+1] = wideMarkerSlot()
}

// Len returns the current table size.
func (l *Locals) Len() int { return len(l.slots) }

// Snapshot returns a defensive copy of the table in index order, the
// ordering a recorded Frame.Locals uses (spec §3).
func (l *Locals) Snapshot() []Slot {
	out := make([]Slot, len(l.slots))
	copy(out, l.slots)
	return out
}

// Clone returns an independent copy, used when execution forks at a
// branch point (spec §4.5.2).
func (l *Locals) Clone() *Locals {
	out := &Locals{slots: make([]Slot, len(l.slots))}
	copy(out.slots, l.slots)
	return out
}

// InitializeUninitialized flips every slot carrying the given tracked
// not-yet-initialized identity to newValue and IsInitialized=true. See
// Stack.InitializeUninitialized.
func (l *Locals) InitializeUninitialized(id int, newValue frame.Value) {
	if id == 0 {
		return
	}
	for i := range l.slots {
		if l.slots[i].Value.UninitID == id {
			l.slots[i].Value = newValue
			l.slots[i].IsInitialized = true
		}
	}
}
