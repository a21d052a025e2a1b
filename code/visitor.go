/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package code

// Visitor is the re-serialization stream a Code emits via Accept (spec
// §4.2, §6). It is trimmed from the full ASM-lineage MethodVisitor found
// in the retrieval pack (other_examples/185c62ba_raskyer-asm__asm-
// methodvisitor.go.go) down to exactly the surface this core's
// Instruction variants need: no annotation/parameter/debug-info visitor
// methods, since those belong to the class-writer collaborator (spec §6),
// not this core. The call-order contract is kept identical to that
// source: VisitCode, then exception blocks (ahead of the instructions
// they protect, per spec §4.2's explicit override), then one VisitXxx per
// instruction in position order, then VisitMaxs, then VisitEnd.
type Visitor interface {
	VisitCode()
	VisitTryCatchBlock(start, end, handler *Label, catchInternalName string)
	VisitLabel(l *Label)
	VisitLineNumber(line int, start *Label)
	VisitInsn(opcode int)
	VisitIntInsn(opcode, operand int)
	VisitVarInsn(opcode, index int)
	VisitIincInsn(index, increment int)
	VisitTypeInsn(opcode int, internalName string)
	VisitFieldInsn(opcode int, owner, name, desc string)
	VisitMethodInsn(opcode int, owner, name, desc string, isInterface bool)
	VisitInvokeDynamicInsn(name, desc string, bootstrap *BootstrapMethod)
	VisitJumpInsn(opcode int, target *Label)
	VisitLdcInsn(c LdcConstant)
	VisitTableSwitchInsn(min, max int, dflt *Label, labels []*Label)
	VisitLookupSwitchInsn(dflt *Label, keys []int32, labels []*Label)
	VisitMultiANewArrayInsn(desc string, dims int)
	VisitMaxs(maxStack, maxLocals int)
	VisitEnd()
}
