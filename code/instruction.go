/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package code is the instruction model (spec §4.2): an in-memory,
// navigable representation of a method's code that survives round-trip
// serialization. It pairs with the method analyzer in package analyzer to
// form the core of this repository.
//
// The spec's design notes favor "a tagged instruction variant plus a match
// on the tag" over per-opcode-family Go types, for exhaustiveness and to
// avoid the teacher's style of dispatching on raw opcode bytes through a
// giant switch on []byte (see the dropped jvm/run.go-style interpreters in
// the retrieval pack) -- here the switch is over a small closed Kind enum,
// with the opcode itself still carried for the cases (arithmetic, casts,
// stack shuffles) where one Kind covers a whole opcode family.
package code

import "github.com/archive-inital/asm/ref"

// Kind tags which payload fields of Instruction are meaningful. It
// corresponds 1:1 to spec §3's Instruction variants.
type Kind int

const (
	KindSimple Kind = iota
	KindInt
	KindLdc
	KindLVT
	KindInc
	KindJump
	KindTableSwitch
	KindLookupSwitch
	KindType
	KindField
	KindMethod
	KindInvokeDynamic
	KindMultiANewArray
	KindLabel
	KindLineNumber
)

// LdcConstant distinguishes the six constant shapes LDC/LDC_W/LDC2_W can
// carry (spec §3, Ldc): int, long, float, double, string, and type.
type LdcConstant struct {
	Int    int32
	Long   int64
	Float  float32
	Double float64
	String string
	// Type holds the descriptor text when the constant is a class literal
	// (Foo.class); it disambiguates a type constant from a same-shaped
	// String constant, which Go's type system otherwise can't since both
	// are plain strings.
	Type    string
	isType  bool
	variant ldcVariant
}

type ldcVariant int

const (
	ldcInt ldcVariant = iota
	ldcLong
	ldcFloat
	ldcDouble
	ldcString
	ldcType
)

func LdcInt(v int32) LdcConstant       { return LdcConstant{Int: v, variant: ldcInt} }
func LdcLong(v int64) LdcConstant      { return LdcConstant{Long: v, variant: ldcLong} }
func LdcFloat(v float32) LdcConstant   { return LdcConstant{Float: v, variant: ldcFloat} }
func LdcDouble(v float64) LdcConstant  { return LdcConstant{Double: v, variant: ldcDouble} }
func LdcString(v string) LdcConstant   { return LdcConstant{String: v, variant: ldcString} }
func LdcType(desc string) LdcConstant  { return LdcConstant{Type: desc, variant: ldcType, isType: true} }

func (c LdcConstant) IsType() bool   { return c.variant == ldcType }
func (c LdcConstant) IsString() bool { return c.variant == ldcString }
func (c LdcConstant) IsInt() bool    { return c.variant == ldcInt }
func (c LdcConstant) IsLong() bool   { return c.variant == ldcLong }
func (c LdcConstant) IsFloat() bool  { return c.variant == ldcFloat }
func (c LdcConstant) IsDouble() bool { return c.variant == ldcDouble }
func (c LdcConstant) IsWide() bool   { return c.variant == ldcLong || c.variant == ldcDouble }

// BootstrapMethod is the invokedynamic bootstrap-method-handle reference
// (spec §3's InvokeDynamic carries a "bootstrap"); kept opaque here since
// the core never resolves or invokes it, only threads it through for the
// class writer collaborator.
type BootstrapMethod struct {
	MethodRef *ref.MethodRef
	Args      []LdcConstant
}

// Instruction is one position in a Code's sequence: either a real
// instruction with an opcode, or a pseudo-instruction (Label,
// LineNumber) that occupies a position but emits no frame.
type Instruction struct {
	Kind   Kind
	Opcode int // the JVMS opcode, or opcodes.PSEUDO_LABEL/PSEUDO_LINENUMBER

	// KindInt
	IntOperand int

	// KindLdc
	Constant LdcConstant

	// KindLVT, KindInc
	VarIndex int

	// KindInc
	IncAmount int

	// KindJump
	Target *Label

	// KindTableSwitch
	TableMin, TableMax int
	DefaultTarget      *Label
	CaseTargets        []*Label

	// KindLookupSwitch (DefaultTarget shared with TableSwitch)
	Keys []int32

	// KindType
	ClassRef *ref.ClassRef

	// KindField
	FieldRef *ref.FieldRef

	// KindMethod
	MethodRef   *ref.MethodRef
	ToInterface bool

	// KindInvokeDynamic
	InvokeName string
	InvokeDesc string
	Bootstrap  *BootstrapMethod

	// KindMultiANewArray
	ArrayDesc string
	Dims      int

	// KindLineNumber
	Line       int
	StartLabel *Label

	// KindLabel
	labelRef *Label

	owner    *Code
	prev     *Instruction
	next     *Instruction
	position int
}

// Owner returns the Code this instruction belongs to.
func (i *Instruction) Owner() *Code { return i.owner }

// Prev returns the preceding instruction, or nil if i is first.
func (i *Instruction) Prev() *Instruction { return i.prev }

// Next returns the following instruction, or nil if i is last.
func (i *Instruction) Next() *Instruction { return i.next }

// Position returns i's 0-based index within its owning Code's sequence.
// Stable under append; recomputed lazily after an insertion.
func (i *Instruction) Position() int {
	if i.owner != nil {
		i.owner.ensurePositions()
	}
	return i.position
}

// IsPseudo reports whether this is a Label or LineNumber marker, which
// produces no analyzer frame (spec §4.5.2 step 1).
func (i *Instruction) IsPseudo() bool {
	return i.Kind == KindLabel || i.Kind == KindLineNumber
}

// Label returns the Label this instruction marks, valid only for
// Kind == KindLabel.
func (i *Instruction) Label() *Label {
	if i.Kind != KindLabel {
		return nil
	}
	return i.labelRef
}
