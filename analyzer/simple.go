/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package analyzer

import (
	"github.com/archive-inital/asm/code"
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/frame"
	"github.com/archive-inital/asm/opcodes"
	"github.com/archive-inital/asm/state"
)

// stepSimple handles every zero-operand opcode (code.KindSimple): constant
// pushes, array load/store, stack shuffle, arithmetic/logic, casts,
// RETURN-family, ATHROW, ARRAYLENGTH, MONITORENTER/EXIT, and NOP (spec
// §4.5.3). terminated is true only for RETURN-family and ATHROW.
func stepSimple(method string, i *code.Instruction, stk *state.Stack, locals *state.Locals) (f *frame.Frame, terminated bool, err error) {
	op := i.Opcode
	switch op {
	case opcodes.NOP:
		f = &frame.Frame{Kind: frame.KindArgument, Opcode: op}

	case opcodes.ACONST_NULL:
		f = &frame.Frame{Kind: frame.KindLdc, Opcode: op}
		stk.Push(state.Slot{Value: frame.NullValue, Producer: f})
	case opcodes.ICONST_M1, opcodes.ICONST_0, opcodes.ICONST_1, opcodes.ICONST_2,
		opcodes.ICONST_3, opcodes.ICONST_4, opcodes.ICONST_5:
		f = &frame.Frame{Kind: frame.KindLdc, Opcode: op}
		stk.Push(state.Slot{Value: frame.IntValue, Producer: f})
	case opcodes.LCONST_0, opcodes.LCONST_1:
		f = &frame.Frame{Kind: frame.KindLdc, Opcode: op}
		stk.PushWide(state.Slot{Value: frame.LongValue, Producer: f})
	case opcodes.FCONST_0, opcodes.FCONST_1, opcodes.FCONST_2:
		f = &frame.Frame{Kind: frame.KindLdc, Opcode: op}
		stk.Push(state.Slot{Value: frame.FloatVal, Producer: f})
	case opcodes.DCONST_0, opcodes.DCONST_1:
		f = &frame.Frame{Kind: frame.KindLdc, Opcode: op}
		stk.PushWide(state.Slot{Value: frame.DoubleVal, Producer: f})

	case opcodes.IALOAD, opcodes.LALOAD, opcodes.FALOAD, opcodes.DALOAD,
		opcodes.AALOAD, opcodes.BALOAD, opcodes.CALOAD, opcodes.SALOAD:
		f, err = arrayLoad(op, stk)

	case opcodes.IASTORE, opcodes.LASTORE, opcodes.FASTORE, opcodes.DASTORE,
		opcodes.AASTORE, opcodes.BASTORE, opcodes.CASTORE, opcodes.SASTORE:
		f, err = arrayStore(op, stk)

	case opcodes.POP:
		_, err = popWords(method, stk, 1)
		f = &frame.Frame{Kind: frame.KindPop, Opcode: op}
	case opcodes.POP2:
		_, err = popWords(method, stk, 2)
		f = &frame.Frame{Kind: frame.KindPop, Opcode: op}
	case opcodes.DUP:
		err = dupGeneric(method, stk, 1, 0)
		f = &frame.Frame{Kind: frame.KindDup, Opcode: op}
	case opcodes.DUP_X1:
		err = dupGeneric(method, stk, 1, 1)
		f = &frame.Frame{Kind: frame.KindDup, Opcode: op}
	case opcodes.DUP_X2:
		err = dupGeneric(method, stk, 1, 2)
		f = &frame.Frame{Kind: frame.KindDup, Opcode: op}
	case opcodes.DUP2:
		err = dupGeneric(method, stk, 2, 0)
		f = &frame.Frame{Kind: frame.KindDup, Opcode: op}
	case opcodes.DUP2_X1:
		err = dupGeneric(method, stk, 2, 1)
		f = &frame.Frame{Kind: frame.KindDup, Opcode: op}
	case opcodes.DUP2_X2:
		err = dupGeneric(method, stk, 2, 2)
		f = &frame.Frame{Kind: frame.KindDup, Opcode: op}
	case opcodes.SWAP:
		err = swap(method, stk)
		f = &frame.Frame{Kind: frame.KindSwap, Opcode: op}

	case opcodes.IADD, opcodes.ISUB, opcodes.IMUL, opcodes.IDIV, opcodes.IREM,
		opcodes.IAND, opcodes.IOR, opcodes.IXOR, opcodes.ISHL, opcodes.ISHR, opcodes.IUSHR:
		f, err = binaryOp(op, stk, false, frame.IntValue, false)
	case opcodes.LADD, opcodes.LSUB, opcodes.LMUL, opcodes.LDIV, opcodes.LREM,
		opcodes.LAND, opcodes.LOR, opcodes.LXOR:
		f, err = binaryOp(op, stk, true, frame.LongValue, true)
	case opcodes.LSHL, opcodes.LSHR, opcodes.LUSHR:
		f, err = asymmetricShift(op, stk)
	case opcodes.FADD, opcodes.FSUB, opcodes.FMUL, opcodes.FDIV, opcodes.FREM:
		f, err = binaryOp(op, stk, false, frame.FloatVal, false)
	case opcodes.DADD, opcodes.DSUB, opcodes.DMUL, opcodes.DDIV, opcodes.DREM:
		f, err = binaryOp(op, stk, true, frame.DoubleVal, true)

	case opcodes.INEG:
		f, err = unaryOp(op, stk, false, frame.IntValue, false)
	case opcodes.LNEG:
		f, err = unaryOp(op, stk, true, frame.LongValue, true)
	case opcodes.FNEG:
		f, err = unaryOp(op, stk, false, frame.FloatVal, false)
	case opcodes.DNEG:
		f, err = unaryOp(op, stk, true, frame.DoubleVal, true)

	case opcodes.LCMP:
		f, err = binaryOp(op, stk, true, frame.IntValue, false)
	case opcodes.FCMPL, opcodes.FCMPG:
		f, err = binaryOp(op, stk, false, frame.IntValue, false)
	case opcodes.DCMPL, opcodes.DCMPG:
		f, err = binaryOp(op, stk, true, frame.IntValue, false)

	case opcodes.I2L:
		f, err = unaryOp(op, stk, false, frame.LongValue, true)
	case opcodes.I2F:
		f, err = unaryOp(op, stk, false, frame.FloatVal, false)
	case opcodes.I2D:
		f, err = unaryOp(op, stk, false, frame.DoubleVal, true)
	case opcodes.L2I:
		f, err = unaryOp(op, stk, true, frame.IntValue, false)
	case opcodes.L2F:
		f, err = unaryOp(op, stk, true, frame.FloatVal, false)
	case opcodes.L2D:
		f, err = unaryOp(op, stk, true, frame.DoubleVal, true)
	case opcodes.F2I:
		f, err = unaryOp(op, stk, false, frame.IntValue, false)
	case opcodes.F2L:
		f, err = unaryOp(op, stk, false, frame.LongValue, true)
	case opcodes.F2D:
		f, err = unaryOp(op, stk, false, frame.DoubleVal, true)
	case opcodes.D2I:
		f, err = unaryOp(op, stk, true, frame.IntValue, false)
	case opcodes.D2L:
		f, err = unaryOp(op, stk, true, frame.LongValue, true)
	case opcodes.D2F:
		f, err = unaryOp(op, stk, true, frame.FloatVal, false)
	case opcodes.I2B, opcodes.I2C, opcodes.I2S:
		f, err = unaryOp(op, stk, false, frame.IntValue, false)

	case opcodes.IRETURN:
		_, err = stk.Pop()
		f, terminated = &frame.Frame{Kind: frame.KindReturn, Opcode: op}, true
	case opcodes.LRETURN, opcodes.DRETURN:
		_, err = stk.PopWide()
		f, terminated = &frame.Frame{Kind: frame.KindReturn, Opcode: op}, true
	case opcodes.FRETURN, opcodes.ARETURN:
		_, err = stk.Pop()
		f, terminated = &frame.Frame{Kind: frame.KindReturn, Opcode: op}, true
	case opcodes.RETURN:
		f, terminated = &frame.Frame{Kind: frame.KindReturn, Opcode: op}, true

	case opcodes.ARRAYLENGTH:
		arrRef, e := stk.Pop()
		if e != nil {
			err = e
			break
		}
		nf := &frame.Frame{Kind: frame.KindArrayLength, Opcode: op}
		frame.Link(nf, arrRef.Producer)
		stk.Push(state.Slot{Value: frame.IntValue, Producer: nf})
		f = nf

	case opcodes.ATHROW:
		v, e := stk.Pop()
		if e != nil {
			err = e
			break
		}
		nf := &frame.Frame{Kind: frame.KindThrow, Opcode: op}
		frame.Link(nf, v.Producer)
		f, terminated = nf, true

	case opcodes.MONITORENTER, opcodes.MONITOREXIT:
		v, e := stk.Pop()
		if e != nil {
			err = e
			break
		}
		nf := &frame.Frame{Kind: frame.KindMonitor, Opcode: op}
		frame.Link(nf, v.Producer)
		f = nf

	default:
		err = errs.New(errs.UnknownOpcode, method, "unknown simple opcode "+opcodes.Mnemonic(op))
	}
	return f, terminated, err
}

// elementValue returns the symbolic type an array-load opcode pushes.
func elementValue(op int, arrRef state.Slot) (frame.Value, bool) {
	switch op {
	case opcodes.IALOAD, opcodes.BALOAD, opcodes.CALOAD, opcodes.SALOAD:
		return frame.IntValue, false
	case opcodes.LALOAD:
		return frame.LongValue, true
	case opcodes.FALOAD:
		return frame.FloatVal, false
	case opcodes.DALOAD:
		return frame.DoubleVal, true
	default: // AALOAD
		return arrayElementObject(arrRef.Value.Desc), false
	}
}

func arrayLoad(op int, stk *state.Stack) (*frame.Frame, error) {
	idx, err := stk.Pop()
	if err != nil {
		return nil, err
	}
	arrRef, err := stk.Pop()
	if err != nil {
		return nil, err
	}
	f := &frame.Frame{Kind: frame.KindArrayLoad, Opcode: op}
	frame.Link(f, arrRef.Producer)
	frame.Link(f, idx.Producer)
	val, wide := elementValue(op, arrRef)
	pushResult(stk, state.Slot{Value: val, Producer: f}, wide)
	return f, nil
}

func arrayStoreWide(op int) bool {
	return op == opcodes.LASTORE || op == opcodes.DASTORE
}

func arrayStore(op int, stk *state.Stack) (*frame.Frame, error) {
	v, err := popOperand(stk, arrayStoreWide(op))
	if err != nil {
		return nil, err
	}
	idx, err := stk.Pop()
	if err != nil {
		return nil, err
	}
	arrRef, err := stk.Pop()
	if err != nil {
		return nil, err
	}
	f := &frame.Frame{Kind: frame.KindArrayStore, Opcode: op}
	frame.Link(f, arrRef.Producer)
	frame.Link(f, idx.Producer)
	frame.Link(f, v.Producer)
	return f, nil
}
