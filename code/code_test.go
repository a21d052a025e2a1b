/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package code

import "testing"

func TestAppendNavigation(t *testing.T) {
	c := NewCode()
	a := c.Append(NewSimple(0x00)) // nop
	b := c.Append(NewSimple(0xb1)) // return

	if a.Position() != 0 || b.Position() != 1 {
		t.Fatalf("positions = %d, %d; want 0, 1", a.Position(), b.Position())
	}
	if a.Next() != b {
		t.Fatalf("a.Next() != b")
	}
	if b.Prev() != a {
		t.Fatalf("b.Prev() != a")
	}
	if a.Prev() != nil || b.Next() != nil {
		t.Fatalf("boundary nav broken")
	}
	if c.First() != a || c.Last() != b {
		t.Fatalf("First/Last wrong")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestInsertAfterRecomputesPositions(t *testing.T) {
	c := NewCode()
	a := c.Append(NewSimple(0x00))
	b := c.Append(NewSimple(0xb1))
	mid := NewSimple(0x57) // pop
	c.InsertAfter(a, mid)

	if mid.Position() != 1 {
		t.Fatalf("mid.Position() = %d, want 1", mid.Position())
	}
	if b.Position() != 2 {
		t.Fatalf("b.Position() = %d, want 2", b.Position())
	}
	if a.Next() != mid || mid.Next() != b || mid.Prev() != a || b.Prev() != mid {
		t.Fatalf("nav pointers broken after insert")
	}
}

func TestGetOrCreateLabelAssignsOrderedIDs(t *testing.T) {
	c := NewCode()
	l1 := c.GetOrCreateLabel("L1")
	l2 := c.GetOrCreateLabel("L2")
	l1again := c.GetOrCreateLabel("L1")

	if l1.ID != 0 || l2.ID != 1 {
		t.Fatalf("label ids = %d, %d; want 0, 1", l1.ID, l2.ID)
	}
	if l1 != l1again {
		t.Fatalf("GetOrCreateLabel did not return the canonical Label on second lookup")
	}
}

func TestCheckLabelsRejectsForeignLabel(t *testing.T) {
	c1 := NewCode()
	c2 := NewCode()
	foreign := c2.GetOrCreateLabel("X")

	c1.Append(NewJumpInsn(0xa7, foreign)) // goto a label from another method

	err := c1.CheckLabels()
	if err == nil {
		t.Fatalf("expected MalformedCode for a cross-method label reference")
	}
}

func TestCheckLabelsAcceptsOwnLabels(t *testing.T) {
	c := NewCode()
	l := c.GetOrCreateLabel("L")
	c.Append(NewJumpInsn(0xa7, l))
	c.Append(NewLabelInsn(l))

	if err := c.CheckLabels(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type recordingVisitor struct {
	events []string
}

func (r *recordingVisitor) VisitCode() { r.events = append(r.events, "code") }
func (r *recordingVisitor) VisitTryCatchBlock(start, end, handler *Label, catch string) {
	r.events = append(r.events, "trycatch")
}
func (r *recordingVisitor) VisitLabel(l *Label)              { r.events = append(r.events, "label") }
func (r *recordingVisitor) VisitLineNumber(line int, s *Label) { r.events = append(r.events, "line") }
func (r *recordingVisitor) VisitInsn(opcode int)              { r.events = append(r.events, "insn") }
func (r *recordingVisitor) VisitIntInsn(opcode, operand int)  { r.events = append(r.events, "int") }
func (r *recordingVisitor) VisitVarInsn(opcode, index int)    { r.events = append(r.events, "var") }
func (r *recordingVisitor) VisitIincInsn(index, inc int)      { r.events = append(r.events, "iinc") }
func (r *recordingVisitor) VisitTypeInsn(opcode int, name string) {
	r.events = append(r.events, "type")
}
func (r *recordingVisitor) VisitFieldInsn(opcode int, owner, name, desc string) {
	r.events = append(r.events, "field")
}
func (r *recordingVisitor) VisitMethodInsn(opcode int, owner, name, desc string, itf bool) {
	r.events = append(r.events, "method")
}
func (r *recordingVisitor) VisitInvokeDynamicInsn(name, desc string, b *BootstrapMethod) {
	r.events = append(r.events, "indy")
}
func (r *recordingVisitor) VisitJumpInsn(opcode int, target *Label) {
	r.events = append(r.events, "jump")
}
func (r *recordingVisitor) VisitLdcInsn(c LdcConstant) { r.events = append(r.events, "ldc") }
func (r *recordingVisitor) VisitTableSwitchInsn(min, max int, dflt *Label, labels []*Label) {
	r.events = append(r.events, "tableswitch")
}
func (r *recordingVisitor) VisitLookupSwitchInsn(dflt *Label, keys []int32, labels []*Label) {
	r.events = append(r.events, "lookupswitch")
}
func (r *recordingVisitor) VisitMultiANewArrayInsn(desc string, dims int) {
	r.events = append(r.events, "multianewarray")
}
func (r *recordingVisitor) VisitMaxs(maxStack, maxLocals int) { r.events = append(r.events, "maxs") }
func (r *recordingVisitor) VisitEnd()                         { r.events = append(r.events, "end") }

func TestAcceptEmitsExceptionsBeforeInstructions(t *testing.T) {
	c := NewCode()
	start := c.GetOrCreateLabel("start")
	end := c.GetOrCreateLabel("end")
	handler := c.GetOrCreateLabel("handler")
	c.AddException(&Exception{Start: start, End: end, Handler: handler})

	c.Append(NewLabelInsn(start))
	c.Append(NewSimple(0x00))
	c.Append(NewLabelInsn(end))
	c.Append(NewLabelInsn(handler))
	c.Append(NewSimple(0xb1))

	rv := &recordingVisitor{}
	c.Accept(rv)

	want := []string{"code", "trycatch", "label", "insn", "label", "label", "insn", "maxs", "end"}
	if len(rv.events) != len(want) {
		t.Fatalf("events = %v, want %v", rv.events, want)
	}
	for i := range want {
		if rv.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", rv.events, want)
		}
	}
}
