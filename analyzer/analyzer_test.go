/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package analyzer

import (
	"errors"
	"testing"

	"github.com/archive-inital/asm/classpool"
	"github.com/archive-inital/asm/code"
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/frame"
	"github.com/archive-inital/asm/opcodes"
	"github.com/archive-inital/asm/ref"
)

func newMethod(owner string, access classpool.Access, name, desc string, c *code.Code) *classpool.Method {
	return &classpool.Method{
		Owner:  &classpool.Class{Name: owner},
		Access: access,
		Name:   name,
		Desc:   desc,
		Code:   c,
	}
}

// scenario 1: static int add(int,int) { return a+b; }
func TestAnalyzeStaticIntAdd(t *testing.T) {
	c := code.NewCode()
	iload0 := c.Append(code.NewVarInsn(opcodes.ILOAD, 0))
	iload1 := c.Append(code.NewVarInsn(opcodes.ILOAD, 1))
	iadd := c.Append(code.NewSimple(opcodes.IADD))
	c.Append(code.NewSimple(opcodes.IRETURN))

	m := newMethod("pkg/Calc", classpool.AccStatic, "add", "(II)I", c)
	result, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MaxStack != 2 {
		t.Fatalf("maxStack = %d, want 2", result.MaxStack)
	}
	if result.MaxLocals != 2 {
		t.Fatalf("maxLocals = %d, want 2", result.MaxLocals)
	}

	iaddFrames := result.FramesOf(iadd)
	if len(iaddFrames) != 1 {
		t.Fatalf("expected exactly one reach of iadd, got %d", len(iaddFrames))
	}
	if iaddFrames[0].IsConstant() {
		t.Fatalf("add of two arguments must not be constant")
	}

	iload0Frames := result.FramesOf(iload0)
	iload1Frames := result.FramesOf(iload1)
	if len(iload0Frames) != 1 || len(iload1Frames) != 1 {
		t.Fatalf("expected iload0/iload1 to each be reached once")
	}
	writes := iaddFrames[0].Writes
	if len(writes) != 2 || writes[0] != iload0Frames[0] || writes[1] != iload1Frames[0] {
		t.Fatalf("iadd.writes must be [iload0, iload1] in program order, got %v", writes)
	}
}

// scenario 2: static long id(long) { return x; }
func TestAnalyzeStaticLongIdentity(t *testing.T) {
	c := code.NewCode()
	c.Append(code.NewVarInsn(opcodes.LLOAD, 0))
	c.Append(code.NewSimple(opcodes.LRETURN))

	m := newMethod("pkg/Calc", classpool.AccStatic, "id", "(J)J", c)
	result, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MaxStack != 2 {
		t.Fatalf("maxStack = %d, want 2 (wide value occupies two slots)", result.MaxStack)
	}
	if result.MaxLocals != 2 {
		t.Fatalf("maxLocals = %d, want 2", result.MaxLocals)
	}
}

// scenario 3: GOTO L; L: RETURN -- single path, no fallthrough exploration.
func TestAnalyzeGotoHasNoFallthrough(t *testing.T) {
	c := code.NewCode()
	l := c.GetOrCreateLabel("L")
	goto_ := c.Append(code.NewJumpInsn(opcodes.GOTO, l))
	c.Append(code.NewLabelInsn(l))
	ret := c.Append(code.NewSimple(opcodes.RETURN))

	m := newMethod("pkg/Calc", classpool.AccStatic, "loop", "()V", c)
	result, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.FramesOf(goto_)) != 1 {
		t.Fatalf("expected goto to be reached exactly once")
	}
	if len(result.FramesOf(ret)) != 1 {
		t.Fatalf("expected return to be reached exactly once (no fallthrough duplicate)")
	}
}

// scenario 4: IFEQ L1; ICONST_0; GOTO L2; L1: ICONST_1; L2: IRETURN.
// The IRETURN at L2 is reached twice, once per branch.
func TestAnalyzeDiamondBranchRecordsBothReaches(t *testing.T) {
	c := code.NewCode()
	l1 := c.GetOrCreateLabel("L1")
	l2 := c.GetOrCreateLabel("L2")

	c.Append(code.NewVarInsn(opcodes.ILOAD, 0))
	c.Append(code.NewJumpInsn(opcodes.IFEQ, l1))
	c.Append(code.NewSimple(opcodes.ICONST_0))
	c.Append(code.NewJumpInsn(opcodes.GOTO, l2))
	c.Append(code.NewLabelInsn(l1))
	c.Append(code.NewSimple(opcodes.ICONST_1))
	c.Append(code.NewLabelInsn(l2))
	iret := c.Append(code.NewSimple(opcodes.IRETURN))

	m := newMethod("pkg/Calc", classpool.AccStatic, "pick", "(I)I", c)
	result, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frames := result.FramesOf(iret)
	if len(frames) != 2 {
		t.Fatalf("expected IRETURN to be reached twice (once per branch), got %d", len(frames))
	}
	for _, f := range frames {
		if len(f.Stack) != 1 || f.Stack[0].Type != frame.Int {
			t.Fatalf("expected each IRETURN reach to see stack=[INT], got %v", f.Stack)
		}
	}
}

// scenario 5: try { ASTORE 1 } catch(Throwable t) { ALOAD 1; ARETURN }.
func TestAnalyzeExceptionHandlerGetsFreshThrowableStack(t *testing.T) {
	c := code.NewCode()
	start := c.GetOrCreateLabel("start")
	end := c.GetOrCreateLabel("end")
	handler := c.GetOrCreateLabel("handler")

	c.Append(code.NewLabelInsn(start))
	c.Append(code.NewVarInsn(opcodes.ALOAD, 0))
	c.Append(code.NewVarInsn(opcodes.ASTORE, 1))
	c.Append(code.NewLabelInsn(end))
	c.Append(code.NewSimple(opcodes.RETURN))
	c.Append(code.NewLabelInsn(handler))
	aload := c.Append(code.NewVarInsn(opcodes.ALOAD, 1))
	c.Append(code.NewSimple(opcodes.ARETURN))

	c.AddException(&code.Exception{Start: start, End: end, Handler: handler, Catch: nil})

	m := newMethod("pkg/Calc", classpool.AccStatic, "guarded", "(Ljava/lang/Object;)Ljava/lang/Object;", c)

	// Declared capacity only; seedLocals fills slot 0 from the descriptor's
	// Object argument and does not read MaxLocals.
	c.MaxLocals = 2

	result, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every protected instruction contributes its own handler edge (spec
	// §4.5.1: an exception may originate at any instruction in the try
	// range), so the handler's ALOAD is reached once per protected
	// instruction -- each reach starts from the fresh single-slot stack, so
	// the frame (snapshotted after the ALOAD's push) holds exactly the
	// Throwable at the bottom plus the loaded local on top.
	aloadFrames := result.FramesOf(aload)
	if len(aloadFrames) == 0 {
		t.Fatalf("expected handler's ALOAD to be reached at least once")
	}
	for _, f := range aloadFrames {
		if len(f.Stack) != 2 || f.Stack[0].Type != frame.Object || f.Stack[0].Desc != "java/lang/Throwable" {
			t.Fatalf("expected handler entry stack to carry one Throwable slot beneath the loaded local, got %v", f.Stack)
		}
	}
}

func TestAnalyzeExceptionHandlerWithCatchTypeSucceeds(t *testing.T) {
	c := code.NewCode()
	start := c.GetOrCreateLabel("start")
	end := c.GetOrCreateLabel("end")
	handler := c.GetOrCreateLabel("handler")

	c.Append(code.NewLabelInsn(start))
	c.Append(code.NewSimple(opcodes.NOP))
	c.Append(code.NewLabelInsn(end))
	c.Append(code.NewSimple(opcodes.RETURN))
	c.Append(code.NewLabelInsn(handler))
	c.Append(code.NewSimple(opcodes.POP))
	c.Append(code.NewSimple(opcodes.RETURN))

	c.AddException(&code.Exception{Start: start, End: end, Handler: handler, Catch: ref.NewClassRef("java/io/IOException")})

	m := newMethod("pkg/Calc", classpool.AccStatic, "guarded", "()V", c)
	_, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// scenario 6: JSR L1 -- UnsupportedOpcode, no partial frames persisted.
func TestAnalyzeJsrIsUnsupported(t *testing.T) {
	c := code.NewCode()
	l1 := c.GetOrCreateLabel("L1")
	c.Append(code.NewVarInsn(opcodes.ILOAD, 0))
	c.Append(code.NewJumpInsn(opcodes.JSR, l1))
	c.Append(code.NewLabelInsn(l1))
	c.Append(code.NewSimple(opcodes.RETURN))

	m := newMethod("pkg/Calc", classpool.AccStatic, "withJsr", "(I)V", c)
	result, err := New().Analyze(m)
	if err == nil {
		t.Fatalf("expected UnsupportedOpcode, got nil")
	}
	if !errors.Is(err, errs.UnsupportedOpcodeErr) {
		t.Fatalf("expected UnsupportedOpcode, got %v", err)
	}
	if len(result.Instructions()) != 0 {
		t.Fatalf("expected no partial frames persisted on failure, got %d instructions recorded", len(result.Instructions()))
	}
}

func TestAnalyzeRetIsUnsupported(t *testing.T) {
	c := code.NewCode()
	c.Append(code.NewVarInsn(opcodes.RET, 1))

	m := newMethod("pkg/Calc", classpool.AccStatic, "withRet", "()V", c)
	_, err := New().Analyze(m)
	if !errors.Is(err, errs.UnsupportedOpcodeErr) {
		t.Fatalf("expected UnsupportedOpcode, got %v", err)
	}
}

func TestAnalyzeAbstractMethodReturnsEmptyResult(t *testing.T) {
	m := newMethod("pkg/Iface", classpool.AccAbstract, "doIt", "()V", code.NewCode())
	result, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Instructions()) != 0 {
		t.Fatalf("expected empty result for an abstract method")
	}
}

func TestAnalyzeNativeMethodReturnsEmptyResult(t *testing.T) {
	c := code.NewCode()
	c.Append(code.NewSimple(opcodes.RETURN))
	m := newMethod("pkg/Native", classpool.AccNative, "doIt", "()V", c)
	result, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Instructions()) != 0 {
		t.Fatalf("expected empty result for a native method")
	}
}

// INVOKESPECIAL on a freshly-NEW'd, DUP'd receiver must flip every alias
// of that not-yet-initialized object to initialized (spec §4.5.3, §9).
func TestAnalyzeInvokeSpecialInitializesAllAliases(t *testing.T) {
	c := code.NewCode()
	c.Append(code.NewTypeInsn(opcodes.NEW, ref.NewClassRef("pkg/Widget")))
	c.Append(code.NewSimple(opcodes.DUP))
	c.Append(code.NewMethodInsn(opcodes.INVOKESPECIAL, ref.NewMethodRef("pkg/Widget", "<init>", "()V"), false))
	c.Append(code.NewVarInsn(opcodes.ASTORE, 0))
	areturn := c.Append(code.NewVarInsn(opcodes.ALOAD, 0))
	c.Append(code.NewSimple(opcodes.ARETURN))

	m := newMethod("pkg/Calc", classpool.AccStatic, "make", "()Lpkg/Widget;", c)
	result, err := New().Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frames := result.FramesOf(areturn)
	if len(frames) != 1 {
		t.Fatalf("expected one reach of the final ALOAD")
	}
	if len(frames[0].Stack) != 1 || frames[0].Stack[0].Type != frame.Object {
		t.Fatalf("expected the stored-then-reloaded receiver to be typed Object after <init>, got %v", frames[0].Stack)
	}
}

func TestAnalyzeUnknownOpcodeFails(t *testing.T) {
	c := code.NewCode()
	c.Append(&code.Instruction{Kind: code.KindSimple, Opcode: 0xff})
	m := newMethod("pkg/Calc", classpool.AccStatic, "bogus", "()V", c)
	_, err := New().Analyze(m)
	if !errors.Is(err, errs.UnknownOpcodeErr) {
		t.Fatalf("expected UnknownOpcode, got %v", err)
	}
}

func TestAnalyzeFallOffEndFails(t *testing.T) {
	c := code.NewCode()
	c.Append(code.NewVarInsn(opcodes.ILOAD, 0))
	m := newMethod("pkg/Calc", classpool.AccStatic, "fallsOff", "(I)I", c)
	_, err := New().Analyze(m)
	if !errors.Is(err, errs.FallOffEndErr) {
		t.Fatalf("expected FallOffEnd, got %v", err)
	}
}
