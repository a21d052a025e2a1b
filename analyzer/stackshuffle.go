/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package analyzer

import (
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/state"
)

// popWords pops category-aware units off stack until their combined width
// (1 per category-1 slot, 2 per wide slot) equals target, returning them
// top-first. It fails WideMismatch if a wide unit would overshoot target --
// this is how DUP_X1's "fails if top is wide" and the narrow-operand
// opcodes' rejection of a wide top both fall out, without a special case
// per caller (spec §4.5.3's stack-shuffle family).
func popWords(method string, stk *state.Stack, target int) ([]state.Slot, error) {
	var units []state.Slot
	width := 0
	for width < target {
		wide := stk.TopIsWide()
		var v state.Slot
		var err error
		if wide {
			v, err = stk.PopWide()
			width += 2
		} else {
			v, err = stk.Pop()
			width += 1
		}
		if err != nil {
			return nil, err
		}
		units = append(units, v)
	}
	if width != target {
		return nil, errs.New(errs.WideMismatch, method, "stack shuffle operand width mismatch")
	}
	return units, nil
}

// restoreUnits pushes units back in their original top-to-bottom relative
// order, becoming the new top of stack.
func restoreUnits(stk *state.Stack, units []state.Slot) {
	for i := len(units) - 1; i >= 0; i-- {
		u := units[i]
		if u.Value.IsWide() {
			stk.PushWide(u)
		} else {
			stk.Push(u)
		}
	}
}

// dupGeneric implements the whole DUP/DUP_X1/DUP_X2/DUP2/DUP2_X1/DUP2_X2
// family as one shape: pop a top group of topWidth words, optionally pop a
// below group of belowWidth words, then push back top, below, top -- the
// duplicate ends up belowWidth+topWidth words under the (unchanged) original
// top group (spec §4.5.3: "follow JVMS category-1/category-2 semantics
// exactly").
func dupGeneric(method string, stk *state.Stack, topWidth, belowWidth int) error {
	top, err := popWords(method, stk, topWidth)
	if err != nil {
		return err
	}
	var below []state.Slot
	if belowWidth > 0 {
		below, err = popWords(method, stk, belowWidth)
		if err != nil {
			return err
		}
	}
	restoreUnits(stk, top)
	if belowWidth > 0 {
		restoreUnits(stk, below)
	}
	restoreUnits(stk, top)
	return nil
}

// swap implements SWAP: two category-1 values exchange places. popWords(1)
// on either rejects a wide operand, matching JVMS (there is no wide SWAP).
func swap(method string, stk *state.Stack) error {
	top, err := popWords(method, stk, 1)
	if err != nil {
		return err
	}
	below, err := popWords(method, stk, 1)
	if err != nil {
		return err
	}
	stk.Push(top[0])
	stk.Push(below[0])
	return nil
}
