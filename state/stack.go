/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package state

import (
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/frame"
)

// Stack is the working symbolic operand stack the analyzer mutates while
// walking a method (spec §4.4). Internally index 0 is top-of-stack, so
// pop is an O(1) reslice while push prepends by copying the slice; callers
// needing the bottom-to-top snapshot order
// recorded on a Frame should use Snapshot.
type Stack struct {
	method string // owning method name, carried into StackUnderflow/WideMismatch errors
	slots  []Slot
}

// NewStack returns an empty working stack for the named method.
func NewStack(method string) *Stack { return &Stack{method: method} }

// Push prepends a single category-1 slot.
func (s *Stack) Push(v Slot) {
	s.slots = append([]Slot{v}, s.slots...)
}

// PushWide prepends a category-2 (LONG/DOUBLE) slot followed by its
// synthetic placeholder, so the two consecutive entries that spec §8
// requires always move and disappear together.
func (s *Stack) PushWide(v Slot) {
	s.slots = append([]Slot{v, wideMarkerSlot()}, s.slots...)
}

// Pop removes and returns the top slot, failing StackUnderflow on an
// empty stack.
func (s *Stack) Pop() (Slot, error) {
	if len(s.slots) == 0 {
		return Slot{}, errs.New(errs.StackUnderflow, s.method, "pop on empty operand stack")
	}
	v := s.slots[0]
	s.slots = s.slots[1:]
	return v, nil
}

// PopWide removes and returns the top wide value together with its
// placeholder, failing WideMismatch if the top two slots are not a
// primary/marker pair, and StackUnderflow if fewer than two remain.
func (s *Stack) PopWide() (Slot, error) {
	if len(s.slots) < 2 {
		return Slot{}, errs.New(errs.StackUnderflow, s.method, "pop2 on operand stack with fewer than 2 slots")
	}
	v, marker := s.slots[0], s.slots[1]
	if !v.Value.IsWide() || !marker.IsWideMarker() {
		return Slot{}, errs.New(errs.WideMismatch, s.method, "top of stack is not a wide value")
	}
	s.slots = s.slots[2:]
	return v, nil
}

// Peek returns the top slot without removing it. The second return value
// is false on an empty stack.
func (s *Stack) Peek() (Slot, bool) {
	if len(s.slots) == 0 {
		return Slot{}, false
	}
	return s.slots[0], true
}

// TopIsWide reports whether the current top-of-stack slot is the primary
// half of a wide value, used to route POP2/DUP2-family opcodes (spec
// §4.5.3's "fails WideMismatch if attempted on a wide value" edge case).
func (s *Stack) TopIsWide() bool {
	top, ok := s.Peek()
	return ok && top.Value.IsWide()
}

// Len returns the number of occupied slots, including wide markers --
// the same unit the analyzer's running/maxStack bookkeeping counts in.
func (s *Stack) Len() int { return len(s.slots) }

// Snapshot returns the stack contents in bottom-to-top order, the
// ordering spec §3 requires for a recorded Frame.Stack.
func (s *Stack) Snapshot() []Slot {
	out := make([]Slot, len(s.slots))
	for i, v := range s.slots {
		out[len(s.slots)-1-i] = v
	}
	return out
}

// Clone returns an independent copy, used when a branch point forks
// execution down more than one successor (spec §4.5.2).
func (s *Stack) Clone() *Stack {
	out := &Stack{method: s.method, slots: make([]Slot, len(s.slots))}
	copy(out.slots, s.slots)
	return out
}

// InitializeUninitialized flips every slot carrying the given tracked
// not-yet-initialized identity to newValue and IsInitialized=true (spec
// §4.5.3, INVOKESPECIAL's receiver-initialization rule: initializing one
// occurrence initializes every alias of the same object).
func (s *Stack) InitializeUninitialized(id int, newValue frame.Value) {
	if id == 0 {
		return
	}
	for i := range s.slots {
		if s.slots[i].Value.UninitID == id {
			s.slots[i].Value = newValue
			s.slots[i].IsInitialized = true
		}
	}
}
