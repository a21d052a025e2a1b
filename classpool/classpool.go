/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classpool implements the class/method/field model and the
// ClassPool container (spec §3, §4). Parsing raw class-file bytes is an
// explicit non-goal of this core (spec §1) -- that's the job of an
// injected Parser, an external collaborator analogous to the teacher's
// classloader.LoadClassFromFile/loadClassFromBytes pipeline, which this
// package deliberately does not reimplement.
package classpool

import (
	"github.com/archive-inital/asm/errs"
	"github.com/archive-inital/asm/internal/analogging"
)

// Parser turns raw class-file bytes into a fully-built Class (spec §6:
// "From the class-pool loader: a stream of Class entities"). A real
// implementation would decode the JVMS class file format; this core only
// depends on the interface.
type Parser interface {
	Parse(bytes []byte) (*Class, error)
}

// ClassPool maps fully-qualified internal class names to Class, in
// insertion order (spec §3, ClassPool).
type ClassPool struct {
	parser    Parser
	order     []string
	classes   map[string]*Class
	finalized bool
}

// New returns an empty ClassPool that uses parser to turn bytes into
// Class entities on Add.
func New(parser Parser) *ClassPool {
	return &ClassPool{parser: parser, classes: make(map[string]*Class)}
}

// Add parses bytes via the pool's Parser and inserts the resulting Class.
// Fails fast with DuplicateClass if the name is already present (spec §7).
func (p *ClassPool) Add(bytes []byte) (*Class, error) {
	c, err := p.parser.Parse(bytes)
	if err != nil {
		return nil, err
	}
	if _, exists := p.classes[c.Name]; exists {
		return nil, errs.Newf(errs.DuplicateClass, c.Name, "class %q already present in pool", c.Name)
	}
	c.pool = p
	p.classes[c.Name] = c
	p.order = append(p.order, c.Name)
	analogging.Tracef("classpool", "added class %s", c.Name)
	return c, nil
}

// Remove deletes c from the pool. Fails fast with UnknownClass if c's name
// isn't present (spec §7).
func (p *ClassPool) Remove(c *Class) error {
	if _, ok := p.classes[c.Name]; !ok {
		return errs.Newf(errs.UnknownClass, c.Name, "class %q not present in pool", c.Name)
	}
	delete(p.classes, c.Name)
	for i, n := range p.order {
		if n == c.Name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	analogging.Tracef("classpool", "removed class %s", c.Name)
	return nil
}

// Get returns the class named name, or nil if absent.
func (p *ClassPool) Get(name string) *Class { return p.classes[name] }

// Classes returns every class in insertion order, for deterministic jar
// output (spec §3).
func (p *ClassPool) Classes() []*Class {
	out := make([]*Class, 0, len(p.order))
	for _, n := range p.order {
		out = append(out, p.classes[n])
	}
	return out
}

// Init resolves every Parent/Interfaces reference against this pool and
// builds the Children/Implementers back-reference graph (spec §3, §4.1).
// The pool is effectively frozen after Init: callers should not Add or
// Remove classes afterward, though nothing here enforces that beyond the
// stale back-reference graph it would produce.
func (p *ClassPool) Init() error {
	for _, c := range p.Classes() {
		if c.Parent != nil {
			c.Parent.Resolve(p)
		}
		for _, itf := range c.Interfaces {
			itf.Resolve(p)
		}
	}
	for _, c := range p.Classes() {
		if parent, ok := classOf(c.Parent); ok {
			parent.children = append(parent.children, c)
		}
		for _, itf := range c.Interfaces {
			if iface, ok := classOf(itf); ok {
				iface.implementers = append(iface.implementers, c)
			}
		}
	}
	p.finalized = true
	return nil
}

func classOf(cr interface{ Resolved() any }) (*Class, bool) {
	if cr == nil {
		return nil, false
	}
	c, ok := cr.Resolved().(*Class)
	return c, ok && c != nil
}

// LookupClass implements ref.Pool for *ClassRef resolution.
func (p *ClassPool) LookupClass(name string) (any, bool) {
	c, ok := p.classes[name]
	if !ok {
		return nil, false
	}
	return c, true
}

// LookupField implements ref.Pool for *FieldRef resolution.
func (p *ClassPool) LookupField(owner, name, desc string) (any, bool) {
	c, ok := p.classes[owner]
	if !ok {
		return nil, false
	}
	for _, f := range c.Fields {
		if f.Name == name && f.Desc == desc {
			return f, true
		}
	}
	return nil, false
}

// LookupMethod implements ref.Pool for *MethodRef resolution.
func (p *ClassPool) LookupMethod(owner, name, desc string) (any, bool) {
	c, ok := p.classes[owner]
	if !ok {
		return nil, false
	}
	for _, m := range c.Methods {
		if m.Name == name && m.Desc == desc {
			return m, true
		}
	}
	return nil, false
}
