/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package analyzer

import (
	"github.com/archive-inital/asm/code"
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/frame"
	"github.com/archive-inital/asm/internal/descriptor"
	"github.com/archive-inital/asm/opcodes"
	"github.com/archive-inital/asm/state"
)

// stepOutcome is what one instruction's processing produces: the frame to
// record (nil for pseudo-instructions), the successor instructions to fork
// exploration to (empty for straight-line code), and whether this path
// terminates here (spec §4.5.2).
type stepOutcome struct {
	frame      *frame.Frame
	successors []*code.Instruction
	terminated bool
}

// step dispatches one instruction by Kind, mutating stack/locals in place
// and returning what happened (spec §4.5.2 step 1, §4.5.3's rule table).
func step(method string, i *code.Instruction, stk *state.Stack, locals *state.Locals, uninitID *int) (stepOutcome, error) {
	switch i.Kind {
	case code.KindLabel, code.KindLineNumber:
		return stepOutcome{}, nil

	case code.KindSimple:
		f, terminated, err := stepSimple(method, i, stk, locals)
		return stepOutcome{frame: f, terminated: terminated}, err

	case code.KindInt:
		f, err := stepInt(method, i, stk)
		return stepOutcome{frame: f}, err

	case code.KindLdc:
		f := stepLdc(i, stk)
		return stepOutcome{frame: f}, nil

	case code.KindLVT:
		f, err := stepLVT(method, i, stk, locals)
		return stepOutcome{frame: f}, err

	case code.KindInc:
		f := stepInc(i, locals)
		return stepOutcome{frame: f}, nil

	case code.KindJump:
		return stepJump(method, i, stk)

	case code.KindTableSwitch:
		return stepTableSwitch(method, i, stk)

	case code.KindLookupSwitch:
		return stepLookupSwitch(method, i, stk)

	case code.KindType:
		f, err := stepType(method, i, stk, locals, uninitID)
		return stepOutcome{frame: f}, err

	case code.KindField:
		f, err := stepField(method, i, stk)
		return stepOutcome{frame: f}, err

	case code.KindMethod:
		f, err := stepMethod(method, i, stk, locals, uninitID)
		return stepOutcome{frame: f}, err

	case code.KindInvokeDynamic:
		f, err := stepInvokeDynamic(method, i, stk)
		return stepOutcome{frame: f}, err

	case code.KindMultiANewArray:
		f, err := stepMultiANewArray(method, i, stk)
		return stepOutcome{frame: f}, err

	default:
		return stepOutcome{}, errs.New(errs.UnknownOpcode, method, "unrecognized instruction kind")
	}
}

func stepInt(method string, i *code.Instruction, stk *state.Stack) (*frame.Frame, error) {
	switch i.Opcode {
	case opcodes.BIPUSH, opcodes.SIPUSH:
		f := &frame.Frame{Kind: frame.KindLdc, Opcode: i.Opcode}
		stk.Push(state.Slot{Value: frame.IntValue, Producer: f})
		return f, nil
	case opcodes.NEWARRAY:
		length, err := stk.Pop()
		if err != nil {
			return nil, err
		}
		f := &frame.Frame{Kind: frame.KindNewArray, Opcode: i.Opcode}
		frame.Link(f, length.Producer)
		stk.Push(state.Slot{Value: frame.ObjectValue("[" + newarrayElementLetter(i.IntOperand)), Producer: f})
		return f, nil
	default:
		return nil, errs.New(errs.UnknownOpcode, method, "unknown int-operand opcode "+opcodes.Mnemonic(i.Opcode))
	}
}

// stepLdc handles LDC/LDC_W/LDC2_W's six constant shapes (spec §4.5.3):
// primitive wrapper -> unwrap to primitive; Type descriptor -> Class;
// String -> Object java/lang/String; otherwise Object with the constant's
// type (covered here by the wide/narrow primitive cases -- this core never
// sees a raw "otherwise" shape since LdcConstant only carries the six
// documented variants).
func stepLdc(i *code.Instruction, stk *state.Stack) *frame.Frame {
	f := &frame.Frame{Kind: frame.KindLdc, Opcode: i.Opcode}
	c := i.Constant
	switch {
	case c.IsType():
		stk.Push(state.Slot{Value: frame.ObjectValue("java/lang/Class"), Producer: f})
	case c.IsString():
		stk.Push(state.Slot{Value: frame.ObjectValue("java/lang/String"), Producer: f})
	case c.IsLong():
		stk.PushWide(state.Slot{Value: frame.LongValue, Producer: f})
	case c.IsDouble():
		stk.PushWide(state.Slot{Value: frame.DoubleVal, Producer: f})
	case c.IsFloat():
		stk.Push(state.Slot{Value: frame.FloatVal, Producer: f})
	default: // IsInt
		stk.Push(state.Slot{Value: frame.IntValue, Producer: f})
	}
	return f
}

func lvtWide(opcode int) bool {
	switch opcode {
	case opcodes.LLOAD, opcodes.DLOAD, opcodes.LSTORE, opcodes.DSTORE:
		return true
	default:
		return false
	}
}

func lvtIsLoad(opcode int) bool {
	switch opcode {
	case opcodes.ILOAD, opcodes.LLOAD, opcodes.FLOAD, opcodes.DLOAD, opcodes.ALOAD:
		return true
	default:
		return false
	}
}

// stepLVT handles local load/store (spec §4.5.3): the loaded/stored value
// keeps whatever type was already recorded for that local -- seeded at
// method entry or written by an earlier store -- rather than trusting the
// opcode alone, so ALOAD correctly carries through Object/Uninitialized/
// UninitializedThis payloads a plain opcode-implied type would lose.
func stepLVT(method string, i *code.Instruction, stk *state.Stack, locals *state.Locals) (*frame.Frame, error) {
	if i.Opcode == opcodes.RET {
		return nil, errs.New(errs.UnsupportedOpcode, method, "RET is not supported")
	}
	idx := i.VarIndex
	wide := lvtWide(i.Opcode)
	f := &frame.Frame{Kind: frame.KindLocal, Opcode: i.Opcode}

	if lvtIsLoad(i.Opcode) {
		existing := locals.Get(idx)
		frame.Link(f, existing.Producer)
		newSlot := state.Slot{Value: existing.Value, Producer: f, IsThis: existing.IsThis, IsInitialized: existing.IsInitialized}
		if wide {
			stk.PushWide(newSlot)
		} else {
			stk.Push(newSlot)
		}
		return f, nil
	}

	v, err := popOperand(stk, wide)
	if err != nil {
		return nil, err
	}
	frame.Link(f, v.Producer)
	newSlot := state.Slot{Value: v.Value, Producer: f, IsThis: v.IsThis, IsInitialized: v.IsInitialized}
	if wide {
		locals.SetWide(idx, newSlot)
	} else {
		locals.Set(idx, newSlot)
	}
	return f, nil
}

// stepInc handles IINC: no stack change (spec §4.5.3).
func stepInc(i *code.Instruction, locals *state.Locals) *frame.Frame {
	existing := locals.Get(i.VarIndex)
	f := &frame.Frame{Kind: frame.KindLocal, Opcode: opcodes.IINC}
	frame.Link(f, existing.Producer)
	locals.Set(i.VarIndex, state.Slot{Value: frame.IntValue, Producer: f, IsInitialized: true})
	return f
}

// condBranchPops is how many operands a conditional-branch opcode pops:
// 1 for the IFxx/IFNULL/IFNONNULL family, 2 for IF_ICMPxx/IF_ACMPxx.
func condBranchPops(opcode int) int {
	switch opcode {
	case opcodes.IF_ICMPEQ, opcodes.IF_ICMPNE, opcodes.IF_ICMPLT, opcodes.IF_ICMPGE,
		opcodes.IF_ICMPGT, opcodes.IF_ICMPLE, opcodes.IF_ACMPEQ, opcodes.IF_ACMPNE:
		return 2
	case opcodes.GOTO:
		return 0
	default:
		return 1
	}
}

// stepJump handles conditional branches and GOTO (spec §4.5.3): a
// conditional branch registers both the target and fallthrough as
// successors; GOTO registers only the target, with no fallthrough
// exploration (spec §8 scenario 3).
func stepJump(method string, i *code.Instruction, stk *state.Stack) (stepOutcome, error) {
	if i.Opcode == opcodes.JSR || i.Opcode == opcodes.JSR_W {
		return stepOutcome{}, errs.New(errs.UnsupportedOpcode, method, "JSR is not supported")
	}
	f := &frame.Frame{Kind: frame.KindJump, Opcode: i.Opcode}
	n := condBranchPops(i.Opcode)
	var producers []*frame.Frame
	for k := 0; k < n; k++ {
		v, err := stk.Pop()
		if err != nil {
			return stepOutcome{}, err
		}
		producers = append([]*frame.Frame{v.Producer}, producers...)
	}
	for _, p := range producers {
		frame.Link(f, p)
	}

	target := i.Target.Insn()
	if target == nil {
		return stepOutcome{}, errs.New(errs.MalformedCode, method, "jump target label never marks a position")
	}
	successors := []*code.Instruction{target}
	if i.Opcode != opcodes.GOTO {
		successors = append(successors, i.Next())
	}
	return stepOutcome{frame: f, successors: successors}, nil
}

func switchSuccessors(method string, dflt *code.Label, cases []*code.Label) ([]*code.Instruction, error) {
	if dflt == nil || dflt.Insn() == nil {
		return nil, errs.New(errs.MalformedCode, method, "switch default label never marks a position")
	}
	successors := []*code.Instruction{dflt.Insn()}
	for _, l := range cases {
		if l == nil || l.Insn() == nil {
			return nil, errs.New(errs.MalformedCode, method, "switch case label never marks a position")
		}
		successors = append(successors, l.Insn())
	}
	return successors, nil
}

// stepTableSwitch handles TABLESWITCH (spec §4.5.3): pop key, successors =
// every case label plus default.
func stepTableSwitch(method string, i *code.Instruction, stk *state.Stack) (stepOutcome, error) {
	key, err := stk.Pop()
	if err != nil {
		return stepOutcome{}, err
	}
	f := &frame.Frame{Kind: frame.KindSwitch, Opcode: i.Opcode}
	frame.Link(f, key.Producer)
	successors, err := switchSuccessors(method, i.DefaultTarget, i.CaseTargets)
	if err != nil {
		return stepOutcome{}, err
	}
	return stepOutcome{frame: f, successors: successors}, nil
}

// stepLookupSwitch handles LOOKUPSWITCH identically to TABLESWITCH aside
// from the keys/labels shape (spec §4.5.3).
func stepLookupSwitch(method string, i *code.Instruction, stk *state.Stack) (stepOutcome, error) {
	key, err := stk.Pop()
	if err != nil {
		return stepOutcome{}, err
	}
	f := &frame.Frame{Kind: frame.KindSwitch, Opcode: i.Opcode}
	frame.Link(f, key.Producer)
	successors, err := switchSuccessors(method, i.DefaultTarget, i.CaseTargets)
	if err != nil {
		return stepOutcome{}, err
	}
	return stepOutcome{frame: f, successors: successors}, nil
}

// stepType handles NEW, ANEWARRAY, CHECKCAST, INSTANCEOF (spec §4.5.3).
func stepType(method string, i *code.Instruction, stk *state.Stack, locals *state.Locals, uninitID *int) (*frame.Frame, error) {
	name := ""
	if i.ClassRef != nil {
		name = i.ClassRef.Name
	}
	switch i.Opcode {
	case opcodes.NEW:
		f := &frame.Frame{Kind: frame.KindNew, Opcode: i.Opcode}
		*uninitID++
		stk.Push(state.Slot{Value: frame.UninitializedValueWithID(name, *uninitID), Producer: f})
		return f, nil

	case opcodes.ANEWARRAY:
		length, err := stk.Pop()
		if err != nil {
			return nil, err
		}
		f := &frame.Frame{Kind: frame.KindNewArray, Opcode: i.Opcode}
		frame.Link(f, length.Producer)
		stk.Push(state.Slot{Value: frame.ObjectValue("[" + componentDescriptor(name)), Producer: f})
		return f, nil

	case opcodes.CHECKCAST:
		v, err := stk.Pop()
		if err != nil {
			return nil, err
		}
		f := &frame.Frame{Kind: frame.KindCheckCast, Opcode: i.Opcode}
		frame.Link(f, v.Producer)
		newVal := v.Value
		if name != "" {
			newVal = frame.ObjectValue(name)
		}
		stk.Push(state.Slot{Value: newVal, Producer: f})
		return f, nil

	case opcodes.INSTANCEOF:
		v, err := stk.Pop()
		if err != nil {
			return nil, err
		}
		f := &frame.Frame{Kind: frame.KindInstanceOf, Opcode: i.Opcode}
		frame.Link(f, v.Producer)
		stk.Push(state.Slot{Value: frame.IntValue, Producer: f})
		return f, nil

	default:
		return nil, errs.New(errs.UnknownOpcode, method, "unknown type-operand opcode "+opcodes.Mnemonic(i.Opcode))
	}
}

// stepField handles GETSTATIC/PUTSTATIC/GETFIELD/PUTFIELD (spec §4.5.3).
func stepField(method string, i *code.Instruction, stk *state.Stack) (*frame.Frame, error) {
	desc := ""
	if i.FieldRef != nil {
		desc = i.FieldRef.Desc
	}
	t, err := descriptor.ParseField(desc)
	if err != nil {
		return nil, errs.Wrap(errs.MalformedCode, method, err)
	}
	val, wide := descToValue(t)
	f := &frame.Frame{Kind: frame.KindField, Opcode: i.Opcode}

	switch i.Opcode {
	case opcodes.GETSTATIC:
		pushResult(stk, state.Slot{Value: val, Producer: f}, wide)
	case opcodes.PUTSTATIC:
		v, err := popOperand(stk, wide)
		if err != nil {
			return nil, err
		}
		frame.Link(f, v.Producer)
	case opcodes.GETFIELD:
		objRef, err := stk.Pop()
		if err != nil {
			return nil, err
		}
		frame.Link(f, objRef.Producer)
		pushResult(stk, state.Slot{Value: val, Producer: f}, wide)
	case opcodes.PUTFIELD:
		v, err := popOperand(stk, wide)
		if err != nil {
			return nil, err
		}
		objRef, err := stk.Pop()
		if err != nil {
			return nil, err
		}
		frame.Link(f, objRef.Producer)
		frame.Link(f, v.Producer)
	default:
		return nil, errs.New(errs.UnknownOpcode, method, "unknown field opcode "+opcodes.Mnemonic(i.Opcode))
	}
	return f, nil
}

// stepMethod handles INVOKEVIRTUAL/SPECIAL/STATIC/INTERFACE (spec §4.5.3):
// pop args in reverse, pop the receiver for instance invokes, push a
// result slot if the descriptor's return type is non-void. INVOKESPECIAL
// additionally flips every live alias of the receiver's not-yet-initialized
// identity to initialized, modeling a <init> call (spec §4.5.3, §9).
func stepMethod(method string, i *code.Instruction, stk *state.Stack, locals *state.Locals, uninitID *int) (*frame.Frame, error) {
	desc := ""
	if i.MethodRef != nil {
		desc = i.MethodRef.Desc
	}
	sig, err := descriptor.ParseMethod(desc)
	if err != nil {
		return nil, errs.Wrap(errs.MalformedCode, method, err)
	}

	f := &frame.Frame{Kind: frame.KindMethod, Opcode: i.Opcode}

	var argProducers []*frame.Frame
	for k := len(sig.Args) - 1; k >= 0; k-- {
		_, wide := descToValue(sig.Args[k])
		v, err := popOperand(stk, wide)
		if err != nil {
			return nil, err
		}
		argProducers = append([]*frame.Frame{v.Producer}, argProducers...)
	}

	var receiver state.Slot
	hasReceiver := i.Opcode != opcodes.INVOKESTATIC
	if hasReceiver {
		var err error
		receiver, err = stk.Pop()
		if err != nil {
			return nil, err
		}
		frame.Link(f, receiver.Producer)
	}
	for _, p := range argProducers {
		frame.Link(f, p)
	}

	if hasReceiver && i.Opcode == opcodes.INVOKESPECIAL {
		id := receiver.Value.UninitID
		if id != 0 {
			ownerName := i.MethodRef.Owner
			newVal := frame.ObjectValue(ownerName)
			stk.InitializeUninitialized(id, newVal)
			locals.InitializeUninitialized(id, newVal)
		}
	}

	if sig.Return.Kind != descriptor.Void {
		val, wide := descToValue(sig.Return)
		pushResult(stk, state.Slot{Value: val, Producer: f}, wide)
	}
	return f, nil
}

// stepInvokeDynamic handles INVOKEDYNAMIC: same arity/return handling as
// stepMethod's call-site part, but never has a receiver to pop.
func stepInvokeDynamic(method string, i *code.Instruction, stk *state.Stack) (*frame.Frame, error) {
	sig, err := descriptor.ParseMethod(i.InvokeDesc)
	if err != nil {
		return nil, errs.Wrap(errs.MalformedCode, method, err)
	}
	f := &frame.Frame{Kind: frame.KindMethod, Opcode: i.Opcode}
	var argProducers []*frame.Frame
	for k := len(sig.Args) - 1; k >= 0; k-- {
		_, wide := descToValue(sig.Args[k])
		v, err := popOperand(stk, wide)
		if err != nil {
			return nil, err
		}
		argProducers = append([]*frame.Frame{v.Producer}, argProducers...)
	}
	for _, p := range argProducers {
		frame.Link(f, p)
	}
	if sig.Return.Kind != descriptor.Void {
		val, wide := descToValue(sig.Return)
		pushResult(stk, state.Slot{Value: val, Producer: f}, wide)
	}
	return f, nil
}

// stepMultiANewArray handles MULTIANEWARRAY: pop Dims lengths, push an
// array slot with Dims '['s prepended to ArrayDesc (spec §4.5.3).
func stepMultiANewArray(method string, i *code.Instruction, stk *state.Stack) (*frame.Frame, error) {
	f := &frame.Frame{Kind: frame.KindMultiANewArray, Opcode: i.Opcode}
	for k := 0; k < i.Dims; k++ {
		length, err := stk.Pop()
		if err != nil {
			return nil, err
		}
		frame.Link(f, length.Producer)
	}
	stk.Push(state.Slot{Value: frame.ObjectValue(descriptor.PrependArrayDims(i.ArrayDesc, i.Dims)), Producer: f})
	return f, nil
}
