/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package analyzer

import (
	"github.com/archive-inital/asm/code"
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/frame"
	"github.com/archive-inital/asm/state"
)

// buildHandlers maps every instruction covered by a try block to the
// Exception blocks protecting it, by walking the exception table once in
// source order (spec §4.5.1): "each block contributes every instruction in
// [start, end) -- order of contribution matches source order of the
// exception table."
func buildHandlers(c *code.Code) (map[*code.Instruction][]*code.Exception, error) {
	handlers := make(map[*code.Instruction][]*code.Exception)
	for _, e := range c.Exceptions() {
		if e.Start == nil || e.End == nil || e.Handler == nil {
			return nil, errs.New(errs.MalformedCode, "", "exception block missing a label")
		}
		start, end := e.Start.Insn(), e.End.Insn()
		if start == nil || e.Handler.Insn() == nil {
			return nil, errs.New(errs.MalformedCode, "", "exception block label never marks a position")
		}
		for insn := start; insn != nil && insn != end; insn = insn.Next() {
			handlers[insn] = append(handlers[insn], e)
		}
	}
	return handlers, nil
}

// snapshotValues projects a working-state snapshot down to the immutable
// frame.Value sequence a Frame records (spec §3): a wide slot's synthetic
// marker carries Top, so the two-consecutive-slots invariant (spec §8)
// falls directly out of state.Stack/Locals's own representation.
func snapshotValues(slots []state.Slot) []frame.Value {
	out := make([]frame.Value, len(slots))
	for i, s := range slots {
		out[i] = s.Value
	}
	return out
}

// edge is a (source, target) pair in the visited set (spec §4.5.2).
type edge struct{ from, to *code.Instruction }

// task is one pending unit of straight-line exploration: an instruction to
// resume at plus the stack/locals state to resume it with (spec §9's
// worklist alternative to recursive execute, used here to keep exploration
// off the host call stack regardless of method size).
type task struct {
	insn   *code.Instruction
	stack  *state.Stack
	locals *state.Locals
}

// execute explores every reachable instruction along every control-flow
// edge exactly once per edge (spec §4.5.2), recording one frame per reach
// into result.
func execute(method string, first *code.Instruction, stk *state.Stack, locals *state.Locals, handlers map[*code.Instruction][]*code.Exception, result *AnalyzerResult, uninitID *int) error {
	visited := make(map[edge]bool)
	worklist := []*task{{insn: first, stack: stk, locals: locals}}

	for len(worklist) > 0 {
		n := len(worklist) - 1
		t := worklist[n]
		worklist = worklist[:n]

		cur := t.insn
		curStack := t.stack
		curLocals := t.locals

		for {
			if cur == nil {
				return errs.New(errs.FallOffEnd, method, "control fell off the end of the method")
			}

			outcome, err := step(method, cur, curStack, curLocals, uninitID)
			if err != nil {
				return err
			}
			if outcome.frame != nil {
				outcome.frame.Stack = snapshotValues(curStack.Snapshot())
				outcome.frame.Locals = snapshotValues(curLocals.Snapshot())
				result.record(cur, outcome.frame, curStack.Len(), curLocals.Len())
			}

			for _, h := range handlers[cur] {
				handlerInsn := h.Handler.Insn()
				e := edge{cur, handlerInsn}
				if visited[e] {
					continue
				}
				visited[e] = true
				catchType := "java/lang/Throwable"
				if h.Catch != nil {
					catchType = h.Catch.Name
				}
				hStack := state.NewStack(method)
				hStack.Push(state.Slot{Value: frame.ObjectValue(catchType)})
				worklist = append(worklist, &task{insn: handlerInsn, stack: hStack, locals: curLocals.Clone()})
			}

			if outcome.terminated {
				break
			}

			if len(outcome.successors) > 0 {
				for _, succ := range outcome.successors {
					e := edge{cur, succ}
					if visited[e] {
						continue
					}
					visited[e] = true
					worklist = append(worklist, &task{insn: succ, stack: curStack.Clone(), locals: curLocals.Clone()})
				}
				break
			}

			cur = cur.Next()
		}
	}
	return nil
}
