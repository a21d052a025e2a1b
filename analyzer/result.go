/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package analyzer is the method analyzer (spec §4.5): an abstract
// interpreter that walks every reachable instruction of a method along
// every control-flow edge, maintains a symbolic operand stack and LVT,
// and emits a typed frame per visited instruction into an AnalyzerResult.
package analyzer

import (
	"github.com/archive-inital/asm/code"
	"github.com/archive-inital/asm/frame"
)

// AnalyzerResult is the multimap instruction -> ordered frames (spec §3):
// one instruction may be reached along several distinct control-flow
// paths, and every reach contributes one frame, in exploration order.
type AnalyzerResult struct {
	frames map[*code.Instruction][]*frame.Frame
	order  []*code.Instruction // instructions in first-reach order, for deterministic iteration

	MaxStack  int
	MaxLocals int
}

func newResult() *AnalyzerResult {
	return &AnalyzerResult{frames: make(map[*code.Instruction][]*frame.Frame)}
}

// record appends f to I's frame list and folds stackLen/localsLen into the
// running maxima (spec §4.5.2 step 2).
func (r *AnalyzerResult) record(i *code.Instruction, f *frame.Frame, stackLen, localsLen int) {
	if _, seen := r.frames[i]; !seen {
		r.order = append(r.order, i)
	}
	r.frames[i] = append(r.frames[i], f)
	if stackLen > r.MaxStack {
		r.MaxStack = stackLen
	}
	if localsLen > r.MaxLocals {
		r.MaxLocals = localsLen
	}
}

// FramesOf returns every frame recorded for instruction i, one per reach,
// in exploration order (spec §4.5.4).
func (r *AnalyzerResult) FramesOf(i *code.Instruction) []*frame.Frame {
	return r.frames[i]
}

// Instructions returns every instruction that was reached at least once,
// in first-reach order.
func (r *AnalyzerResult) Instructions() []*code.Instruction {
	return r.order
}

// ConstantFrames returns every recorded frame whose IsConstant holds,
// in the same first-reach instruction order as Instructions (a
// supplementary accessor building on frame.Frame.IsConstant's
// constant-propagation: spec §4.3, §8).
func (r *AnalyzerResult) ConstantFrames() []*frame.Frame {
	var out []*frame.Frame
	for _, i := range r.order {
		for _, f := range r.frames[i] {
			if f.IsConstant() {
				out = append(out, f)
			}
		}
	}
	return out
}
