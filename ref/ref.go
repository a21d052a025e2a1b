/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package ref implements the reference resolver (spec §4.1): named
// handles to classes, fields, and methods that resolve lazily against a
// class pool. The resolver is intentionally pool-agnostic -- it depends
// on a small structural Pool interface rather than importing the
// classpool package directly, so that classpool (which embeds these refs
// in Class/Method/Field and also owns the Code->classpool edge) can
// depend on ref without forming an import cycle.
//
// Grounded on the teacher's classloader CP-entry resolution helpers
// (CPutils.go's FetchCPentry / GetMethInfoFromCPmethref): those functions
// walk the constant pool on every use and never cache: here the result is
// cached on the ref itself after the first successful resolve, matching
// spec §4.1's "resolve(pool) ... caches the link".
package ref

// Pool is the narrow view a Ref needs of a class pool: name-keyed lookup
// of classes, and owner+name+desc lookup of fields/methods on an already
// resolved class. classpool.ClassPool implements this structurally.
type Pool interface {
	LookupClass(name string) (any, bool)
	LookupField(owner, name, desc string) (any, bool)
	LookupMethod(owner, name, desc string) (any, bool)
}

// ClassRef is a named handle to a class. References into external/runtime
// classes (e.g. java/lang/Object when analyzing application code alone)
// are expected to remain unresolved -- analyzer behavior must not depend
// on resolution succeeding.
type ClassRef struct {
	Name     string
	resolved any
}

func NewClassRef(name string) *ClassRef { return &ClassRef{Name: name} }

// Resolve locates the target class in pool and caches the link. It is a
// no-op once resolved.
func (r *ClassRef) Resolve(pool Pool) {
	if r == nil || r.resolved != nil || pool == nil {
		return
	}
	if c, ok := pool.LookupClass(r.Name); ok {
		r.resolved = c
	}
}

// Resolved returns the cached resolution, or nil if unresolved.
func (r *ClassRef) Resolved() any {
	if r == nil {
		return nil
	}
	return r.resolved
}

// FieldRef is a named handle to a field: owner class, field name, field descriptor.
type FieldRef struct {
	Owner    string
	Name     string
	Desc     string
	resolved any
}

func NewFieldRef(owner, name, desc string) *FieldRef {
	return &FieldRef{Owner: owner, Name: name, Desc: desc}
}

func (r *FieldRef) Resolve(pool Pool) {
	if r == nil || r.resolved != nil || pool == nil {
		return
	}
	if f, ok := pool.LookupField(r.Owner, r.Name, r.Desc); ok {
		r.resolved = f
	}
}

func (r *FieldRef) Resolved() any {
	if r == nil {
		return nil
	}
	return r.resolved
}

// MethodRef is a named handle to a method: owner class, method name, method descriptor.
type MethodRef struct {
	Owner    string
	Name     string
	Desc     string
	resolved any
}

func NewMethodRef(owner, name, desc string) *MethodRef {
	return &MethodRef{Owner: owner, Name: name, Desc: desc}
}

func (r *MethodRef) Resolve(pool Pool) {
	if r == nil || r.resolved != nil || pool == nil {
		return
	}
	if m, ok := pool.LookupMethod(r.Owner, r.Name, r.Desc); ok {
		r.resolved = m
	}
}

func (r *MethodRef) Resolved() any {
	if r == nil {
		return nil
	}
	return r.resolved
}
