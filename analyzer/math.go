/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package analyzer

import (
	"github.com/archive-inital/asm/frame"
	"github.com/archive-inital/asm/state"
)

// popOperand pops a single operand, wide-aware.
func popOperand(stk *state.Stack, wide bool) (state.Slot, error) {
	if wide {
		return stk.PopWide()
	}
	return stk.Pop()
}

func pushResult(stk *state.Stack, v state.Slot, wide bool) {
	if wide {
		stk.PushWide(v)
	} else {
		stk.Push(v)
	}
}

// binaryOp implements a same-family binary arithmetic/logic/comparison
// opcode: pop two operands of width opWide, push one result of width
// resultWide and type resultVal, and link the Math frame's Writes to both
// operand producers in program order (first-pushed operand first) so it
// matches spec §8 scenario 1's "iadd.writes == [iload0, iload1]" -- not pop
// order, which would read the other way around.
func binaryOp(opcode int, stk *state.Stack, opWide bool, resultVal frame.Value, resultWide bool) (*frame.Frame, error) {
	v2, err := popOperand(stk, opWide) // pushed last, popped first
	if err != nil {
		return nil, err
	}
	v1, err := popOperand(stk, opWide) // pushed first
	if err != nil {
		return nil, err
	}
	f := &frame.Frame{Kind: frame.KindMath, Opcode: opcode}
	frame.Link(f, v1.Producer)
	frame.Link(f, v2.Producer)
	pushResult(stk, state.Slot{Value: resultVal, Producer: f}, resultWide)
	return f, nil
}

// asymmetricShift implements LSHL/LSHR/LUSHR: value1 is long (wide), value2
// (the shift distance) is int (narrow); result is long.
func asymmetricShift(opcode int, stk *state.Stack) (*frame.Frame, error) {
	shiftAmt, err := stk.Pop()
	if err != nil {
		return nil, err
	}
	value, err := stk.PopWide()
	if err != nil {
		return nil, err
	}
	f := &frame.Frame{Kind: frame.KindMath, Opcode: opcode}
	frame.Link(f, value.Producer)
	frame.Link(f, shiftAmt.Producer)
	stk.PushWide(state.Slot{Value: frame.LongValue, Producer: f})
	return f, nil
}

// unaryOp implements a unary math opcode (negation, numeric cast): pop one
// operand of width srcWide, push one result of width dstWide and type
// dstVal.
func unaryOp(opcode int, stk *state.Stack, srcWide bool, dstVal frame.Value, dstWide bool) (*frame.Frame, error) {
	v, err := popOperand(stk, srcWide)
	if err != nil {
		return nil, err
	}
	f := &frame.Frame{Kind: frame.KindMath, Opcode: opcode}
	frame.Link(f, v.Producer)
	pushResult(stk, state.Slot{Value: dstVal, Producer: f}, dstWide)
	return f, nil
}
