/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package code

import (
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/ref"
)

// Code owns one method's ordered, position-stable instruction sequence,
// its label table, its exception (try/catch) blocks in source order, and
// its declared max-stack/max-locals capacities (spec §3, Code).
type Code struct {
	first, last *Instruction
	length      int

	labels      map[any]*Label
	nextLabelID int

	exceptions []*Exception

	MaxStack  int
	MaxLocals int

	positionsDirty bool
}

// NewCode returns an empty Code ready to be appended to.
func NewCode() *Code {
	return &Code{labels: make(map[any]*Label)}
}

// GetOrCreateLabel returns the canonical Label for raw, allocating a new
// one with the next integer id on first sight (spec §4.2).
func (c *Code) GetOrCreateLabel(raw any) *Label {
	if l, ok := c.labels[raw]; ok {
		return l
	}
	l := &Label{ID: c.nextLabelID, code: c}
	c.nextLabelID++
	c.labels[raw] = l
	return l
}

// First returns the first instruction, or nil if Code is empty.
func (c *Code) First() *Instruction { return c.first }

// Last returns the last instruction, or nil if Code is empty.
func (c *Code) Last() *Instruction { return c.last }

// Len returns the number of instructions (including pseudo-instructions).
func (c *Code) Len() int { return c.length }

// Append adds insn at the end of the sequence. Appending is O(1) and
// never invalidates cached positions.
func (c *Code) Append(insn *Instruction) *Instruction {
	insn.owner = c
	insn.prev = c.last
	insn.next = nil
	if c.last != nil {
		c.last.next = insn
	} else {
		c.first = insn
	}
	c.last = insn
	if !c.positionsDirty {
		insn.position = c.length
	}
	c.length++
	if insn.Kind == KindLabel {
		insn.labelRef.insn = insn
	}
	return insn
}

// InsertAfter splices insn into the sequence immediately after at.
// Insertion is rare per spec §4.2; it marks positions dirty so they are
// recomputed lazily on next access rather than renumbering eagerly.
func (c *Code) InsertAfter(at, insn *Instruction) *Instruction {
	insn.owner = c
	insn.prev = at
	insn.next = at.next
	if at.next != nil {
		at.next.prev = insn
	} else {
		c.last = insn
	}
	at.next = insn
	c.length++
	c.positionsDirty = true
	if insn.Kind == KindLabel {
		insn.labelRef.insn = insn
	}
	return insn
}

// ensurePositions renumbers every instruction's position field if an
// insertion has happened since the last renumbering.
func (c *Code) ensurePositions() {
	if !c.positionsDirty {
		return
	}
	pos := 0
	for i := c.first; i != nil; i = i.next {
		i.position = pos
		pos++
	}
	c.positionsDirty = false
}

// AddException appends an exception block in source order (spec §4.2:
// "order is observable -- nested try/catch resolution depends on it").
func (c *Code) AddException(e *Exception) { c.exceptions = append(c.exceptions, e) }

// Exceptions returns the exception blocks in source order.
func (c *Code) Exceptions() []*Exception { return c.exceptions }

// CheckLabels validates that every label referenced by a jump, switch, or
// exception block was allocated by this Code (spec §4.2: "Fails with
// MalformedCode if an instruction references a label not in the same
// method").
func (c *Code) CheckLabels() error {
	check := func(l *Label) error {
		if l == nil {
			return nil
		}
		if l.code != c {
			return errs.Newf(errs.MalformedCode, "", "label %d belongs to a different method's code", l.ID)
		}
		return nil
	}
	for i := c.first; i != nil; i = i.next {
		switch i.Kind {
		case KindJump:
			if err := check(i.Target); err != nil {
				return err
			}
		case KindTableSwitch:
			if err := check(i.DefaultTarget); err != nil {
				return err
			}
			for _, l := range i.CaseTargets {
				if err := check(l); err != nil {
					return err
				}
			}
		case KindLookupSwitch:
			if err := check(i.DefaultTarget); err != nil {
				return err
			}
			for _, l := range i.CaseTargets {
				if err := check(l); err != nil {
					return err
				}
			}
		case KindLineNumber:
			if err := check(i.StartLabel); err != nil {
				return err
			}
		}
	}
	for _, e := range c.exceptions {
		for _, l := range []*Label{e.Start, e.End, e.Handler} {
			if err := check(l); err != nil {
				return err
			}
		}
	}
	return nil
}

// Accept replays Code onto v: VisitCode, then every exception block ahead
// of the instructions it protects, then one VisitXxx call per instruction
// in position order, then VisitMaxs/VisitEnd (spec §4.2, §6).
func (c *Code) Accept(v Visitor) {
	v.VisitCode()
	for _, e := range c.exceptions {
		catchName := ""
		if e.Catch != nil {
			catchName = e.Catch.Name
		}
		v.VisitTryCatchBlock(e.Start, e.End, e.Handler, catchName)
	}
	for i := c.first; i != nil; i = i.next {
		visitOne(v, i)
	}
	v.VisitMaxs(c.MaxStack, c.MaxLocals)
	v.VisitEnd()
}

func visitOne(v Visitor, i *Instruction) {
	switch i.Kind {
	case KindLabel:
		v.VisitLabel(i.labelRef)
	case KindLineNumber:
		v.VisitLineNumber(i.Line, i.StartLabel)
	case KindSimple:
		v.VisitInsn(i.Opcode)
	case KindInt:
		v.VisitIntInsn(i.Opcode, i.IntOperand)
	case KindLdc:
		v.VisitLdcInsn(i.Constant)
	case KindLVT:
		v.VisitVarInsn(i.Opcode, i.VarIndex)
	case KindInc:
		v.VisitIincInsn(i.VarIndex, i.IncAmount)
	case KindJump:
		v.VisitJumpInsn(i.Opcode, i.Target)
	case KindTableSwitch:
		v.VisitTableSwitchInsn(i.TableMin, i.TableMax, i.DefaultTarget, i.CaseTargets)
	case KindLookupSwitch:
		v.VisitLookupSwitchInsn(i.DefaultTarget, i.Keys, i.CaseTargets)
	case KindType:
		name := ""
		if i.ClassRef != nil {
			name = i.ClassRef.Name
		}
		v.VisitTypeInsn(i.Opcode, name)
	case KindField:
		owner, name, desc := "", "", ""
		if i.FieldRef != nil {
			owner, name, desc = i.FieldRef.Owner, i.FieldRef.Name, i.FieldRef.Desc
		}
		v.VisitFieldInsn(i.Opcode, owner, name, desc)
	case KindMethod:
		owner, name, desc := "", "", ""
		if i.MethodRef != nil {
			owner, name, desc = i.MethodRef.Owner, i.MethodRef.Name, i.MethodRef.Desc
		}
		v.VisitMethodInsn(i.Opcode, owner, name, desc, i.ToInterface)
	case KindInvokeDynamic:
		v.VisitInvokeDynamicInsn(i.InvokeName, i.InvokeDesc, i.Bootstrap)
	case KindMultiANewArray:
		v.VisitMultiANewArrayInsn(i.ArrayDesc, i.Dims)
	}
}

// ---- instruction constructors --------------------------------------------
//
// These build detached instructions; Append/InsertAfter attach them to a
// Code and assign position/owner.

func NewSimple(opcode int) *Instruction { return &Instruction{Kind: KindSimple, Opcode: opcode} }

func NewIntInsn(opcode, operand int) *Instruction {
	return &Instruction{Kind: KindInt, Opcode: opcode, IntOperand: operand}
}

func NewLdcInsn(opcode int, c LdcConstant) *Instruction {
	return &Instruction{Kind: KindLdc, Opcode: opcode, Constant: c}
}

func NewVarInsn(opcode, index int) *Instruction {
	return &Instruction{Kind: KindLVT, Opcode: opcode, VarIndex: index}
}

func NewIincInsn(index, increment int) *Instruction {
	return &Instruction{Kind: KindInc, VarIndex: index, IncAmount: increment}
}

func NewJumpInsn(opcode int, target *Label) *Instruction {
	return &Instruction{Kind: KindJump, Opcode: opcode, Target: target}
}

func NewTableSwitchInsn(min, max int, dflt *Label, labels []*Label) *Instruction {
	return &Instruction{Kind: KindTableSwitch, TableMin: min, TableMax: max, DefaultTarget: dflt, CaseTargets: labels}
}

func NewLookupSwitchInsn(dflt *Label, keys []int32, labels []*Label) *Instruction {
	return &Instruction{Kind: KindLookupSwitch, DefaultTarget: dflt, Keys: keys, CaseTargets: labels}
}

func NewTypeInsn(opcode int, cr *ref.ClassRef) *Instruction {
	return &Instruction{Kind: KindType, Opcode: opcode, ClassRef: cr}
}

func NewFieldInsn(opcode int, fr *ref.FieldRef) *Instruction {
	return &Instruction{Kind: KindField, Opcode: opcode, FieldRef: fr}
}

func NewMethodInsn(opcode int, mr *ref.MethodRef, toInterface bool) *Instruction {
	return &Instruction{Kind: KindMethod, Opcode: opcode, MethodRef: mr, ToInterface: toInterface}
}

func NewInvokeDynamicInsn(name, desc string, bootstrap *BootstrapMethod) *Instruction {
	return &Instruction{Kind: KindInvokeDynamic, Opcode: 0xba, InvokeName: name, InvokeDesc: desc, Bootstrap: bootstrap}
}

func NewMultiANewArrayInsn(desc string, dims int) *Instruction {
	return &Instruction{Kind: KindMultiANewArray, Opcode: 0xc5, ArrayDesc: desc, Dims: dims}
}

func NewLabelInsn(l *Label) *Instruction {
	insn := &Instruction{Kind: KindLabel, Opcode: -1, labelRef: l}
	return insn
}

func NewLineNumberInsn(line int, start *Label) *Instruction {
	return &Instruction{Kind: KindLineNumber, Opcode: -2, Line: line, StartLabel: start}
}
