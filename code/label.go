/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package code

// Label is the canonical handle for one raw label seen while building a
// method's instructions. IDs are assigned in allocation order (spec §4.2);
// callers never construct a Label directly, they go through
// Code.GetOrCreateLabel.
type Label struct {
	ID   int
	code *Code
	// insn is the Label pseudo-instruction marking this label's position in
	// the sequence, once one has been appended. Nil until then.
	insn *Instruction
}

// Insn returns the Label pseudo-instruction marking this label's position,
// or nil if it has not been appended to a Code yet. The analyzer follows
// this to find a jump or switch target's first real successor instruction.
func (l *Label) Insn() *Instruction { return l.insn }
