/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classpool

import "github.com/archive-inital/asm/ref"

// Class is the container entity holding a parsed class's metadata, its
// hierarchy links, and its methods and fields (spec §3, Class). Every
// Class belongs to exactly one ClassPool, set once on Add.
//
// Grounded on the teacher's classloader.Klass/ClData split
// (classloader/classloader.go, other_examples/...classes.go): where the
// teacher keeps the byte-oriented raw-parse shape (constant-pool indices,
// uint16 slots) because it also has to feed a runtime interpreter, this
// type keeps only the resolved, named shape spec §3 calls for -- the raw
// class-file bytes are the loader collaborator's concern (spec §1 non-goal).
type Class struct {
	Name    string
	Source  string
	Access  Access
	Version int // bytecode (class-file) version

	Parent     *ref.ClassRef
	Interfaces []*ref.ClassRef

	Methods []*Method
	Fields  []*Field

	children     []*Class
	implementers []*Class

	pool *ClassPool
}

// Pool returns the ClassPool this class belongs to.
func (c *Class) Pool() *ClassPool { return c.pool }

// Children returns the classes in the same pool whose Parent resolves to
// c, populated during ClassPool.Init.
func (c *Class) Children() []*Class { return c.children }

// Implementers returns the classes in the same pool that list c among
// their Interfaces, populated during ClassPool.Init.
func (c *Class) Implementers() []*Class { return c.implementers }

// CommonSuperclass walks c's and other's parent chains to find their
// nearest common ancestor, for use by a class writer choosing a stack-map
// frame merge type (spec §2, "common-supertype helper for writer").
// Requires the pool to have been Init'd so Parent refs are resolved;
// returns "java/lang/Object" if no closer common ancestor can be
// determined (e.g. because one side's hierarchy escapes the pool).
//
// Grounded on the teacher's LoadClassFromNameOnly superclass-walk loop
// (classloader/classloader.go's `goto loadAclass`), reimplemented as a
// plain loop since a writer-facing helper must not mutate loader state.
func (c *Class) CommonSuperclass(other *Class) string {
	if c == other {
		return c.Name
	}
	ancestors := map[string]bool{}
	for cur := c; cur != nil; cur = cur.resolvedParent() {
		ancestors[cur.Name] = true
	}
	for cur := other; cur != nil; cur = cur.resolvedParent() {
		if ancestors[cur.Name] {
			return cur.Name
		}
	}
	return "java/lang/Object"
}

func (c *Class) resolvedParent() *Class {
	if c.Parent == nil {
		return nil
	}
	p, _ := c.Parent.Resolved().(*Class)
	return p
}
