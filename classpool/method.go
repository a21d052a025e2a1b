/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classpool

import (
	"github.com/archive-inital/asm/code"
	"github.com/archive-inital/asm/internal/descriptor"
)

// Method is owned by exactly one Class and wraps a single Code object
// (spec §3, Method). Abstract or native methods carry an empty Code --
// no instructions -- matching the teacher's own codeAttrib, which is left
// zero-valued for such methods.
type Method struct {
	Owner  *Class
	Access Access
	Name   string
	Desc   string // round-trip of argument+return types
	Code   *code.Code
}

// HasCode reports whether this method has an instruction sequence to
// analyze (false for abstract and native methods, spec §4.5.1).
func (m *Method) HasCode() bool {
	return !m.Access.IsAbstract() && !m.Access.IsNative() && m.Code != nil && m.Code.Len() > 0
}

// Signature parses Desc into argument and return types.
func (m *Method) Signature() (descriptor.Method, error) {
	return descriptor.ParseMethod(m.Desc)
}
