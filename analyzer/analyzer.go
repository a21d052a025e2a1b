/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package analyzer

import (
	"github.com/archive-inital/asm/classpool"
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/frame"
	"github.com/archive-inital/asm/internal/analogging"
	"github.com/archive-inital/asm/state"
)

// MethodAnalyzer is the entry point of the method analyzer (spec §4.5.1).
// It is stateless -- concurrent callers may share one instance safely and
// analyze independent methods in parallel (spec §5).
type MethodAnalyzer struct{}

// New returns a MethodAnalyzer.
func New() *MethodAnalyzer { return &MethodAnalyzer{} }

// Analyze walks every reachable instruction of m along every control-flow
// edge and returns the accumulated AnalyzerResult. Abstract and native
// methods return an empty result without error (spec §4.5.1).
func (a *MethodAnalyzer) Analyze(m *classpool.Method) (result *AnalyzerResult, err error) {
	result = newResult()
	if !m.HasCode() {
		return result, nil
	}
	c := m.Code
	if err := c.CheckLabels(); err != nil {
		return result, err
	}

	// A worklist-based exploration (spec §9's recommended alternative to
	// literal recursion) never grows the host call stack with method size,
	// so genuine host-stack exhaustion shouldn't occur; the recover here is
	// a backstop translating any unexpected panic during exploration (for
	// instance a pathological allocation failure) into the AnalysisFailed
	// the spec requires rather than crashing the caller (spec §4.5.1,
	// §5: "A host-level stack exhaustion must be translated into
	// AnalysisFailed(method, maxStack), not propagated as an internal
	// error").
	defer func() {
		if r := recover(); r != nil {
			analogging.Errorf("analyzer", "panic analyzing %s: %v", m.Name, r)
			err = errs.Newf(errs.AnalysisFailed, m.Name, "analysis failed (declared max-stack %d): %v", c.MaxStack, r)
		}
	}()

	locals, err := seedLocals(m)
	if err != nil {
		return result, err
	}
	handlers, err := buildHandlers(c)
	if err != nil {
		return result, err
	}

	stk := state.NewStack(m.Name)
	uninitID := 0
	if !m.Access.IsStatic() {
		uninitID++
		locals.Set(0, state.Slot{
			Value:         frame.UninitializedThisValueWithID(m.Owner.Name, uninitID),
			IsThis:        true,
			IsInitialized: false,
		})
	}

	if err := execute(m.Name, c.First(), stk, locals, handlers, result, &uninitID); err != nil {
		// A structural failure anywhere in the method discards whatever was
		// recorded so far (spec §8 scenario 6: "no partial frames
		// persisted") rather than returning a partially-populated result.
		return newResult(), err
	}
	return result, nil
}

// seedLocals builds the initial LVT (spec §4.5.1): this, if non-static,
// then one slot per declared argument (two for a 64-bit primitive).
func seedLocals(m *classpool.Method) (*state.Locals, error) {
	locals := state.NewLocals()
	idx := 0
	if !m.Access.IsStatic() {
		idx = 1 // slot 0 is filled by the caller once the uninit id counter exists
	}
	sig, err := m.Signature()
	if err != nil {
		return nil, errs.Wrap(errs.MalformedCode, m.Name, err)
	}
	for _, arg := range sig.Args {
		v, wide := descToValue(arg)
		slot := state.Slot{Value: v, IsInitialized: true}
		if wide {
			locals.SetWide(idx, slot)
			idx += 2
		} else {
			locals.Set(idx, slot)
			idx++
		}
	}
	return locals, nil
}
