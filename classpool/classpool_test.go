/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classpool

import (
	"testing"

	"github.com/archive-inital/asm/ref"
)

// fakeParser builds Class values straight from a name, sidestepping real
// class-file bytes entirely -- parsing bytes is a non-goal of this core.
type fakeParser struct{ classes map[string]*Class }

func (f *fakeParser) Parse(bytes []byte) (*Class, error) {
	name := string(bytes)
	c, ok := f.classes[name]
	if !ok {
		return nil, errNotFound(name)
	}
	return c, nil
}

type notFoundErr string

func (e notFoundErr) Error() string { return "no fake class named " + string(e) }
func errNotFound(name string) error { return notFoundErr(name) }

func buildPool(t *testing.T) *ClassPool {
	t.Helper()
	object := &Class{Name: "java/lang/Object"}
	animal := &Class{Name: "Animal", Parent: ref.NewClassRef("java/lang/Object")}
	dog := &Class{Name: "Dog", Parent: ref.NewClassRef("Animal")}
	runnable := &Class{Name: "Runnable", Access: AccInterface}
	dog.Interfaces = []*ref.ClassRef{ref.NewClassRef("Runnable")}

	p := New(&fakeParser{classes: map[string]*Class{
		"java/lang/Object": object,
		"Animal":            animal,
		"Dog":               dog,
		"Runnable":          runnable,
	}})
	for _, name := range []string{"java/lang/Object", "Animal", "Dog", "Runnable"} {
		if _, err := p.Add([]byte(name)); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}
	return p
}

func TestInitBuildsChildrenAndImplementers(t *testing.T) {
	p := buildPool(t)
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	object := p.Get("java/lang/Object")
	animal := p.Get("Animal")
	dog := p.Get("Dog")
	runnable := p.Get("Runnable")

	if len(object.Children()) != 1 || object.Children()[0] != animal {
		t.Fatalf("Object.Children() = %v, want [Animal]", object.Children())
	}
	if len(animal.Children()) != 1 || animal.Children()[0] != dog {
		t.Fatalf("Animal.Children() = %v, want [Dog]", animal.Children())
	}
	if len(runnable.Implementers()) != 1 || runnable.Implementers()[0] != dog {
		t.Fatalf("Runnable.Implementers() = %v, want [Dog]", runnable.Implementers())
	}
}

func TestCommonSuperclass(t *testing.T) {
	p := buildPool(t)
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	animal := p.Get("Animal")
	dog := p.Get("Dog")

	if got := dog.CommonSuperclass(animal); got != "Animal" {
		t.Fatalf("CommonSuperclass = %q, want Animal", got)
	}
	if got := dog.CommonSuperclass(dog); got != "Dog" {
		t.Fatalf("CommonSuperclass(self) = %q, want Dog", got)
	}
}

func TestAddDuplicateClassFails(t *testing.T) {
	p := buildPool(t)
	if _, err := p.Add([]byte("Dog")); err == nil {
		t.Fatalf("expected DuplicateClass error")
	}
}

func TestRemoveUnknownClassFails(t *testing.T) {
	p := buildPool(t)
	ghost := &Class{Name: "Ghost"}
	if err := p.Remove(ghost); err == nil {
		t.Fatalf("expected UnknownClass error")
	}
}

func TestRemoveThenGetReturnsNil(t *testing.T) {
	p := buildPool(t)
	dog := p.Get("Dog")
	if err := p.Remove(dog); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if p.Get("Dog") != nil {
		t.Fatalf("expected Dog to be gone after Remove")
	}
	classes := p.Classes()
	for _, c := range classes {
		if c.Name == "Dog" {
			t.Fatalf("Classes() still lists Dog after Remove")
		}
	}
}

func TestClassesPreservesInsertionOrder(t *testing.T) {
	p := buildPool(t)
	want := []string{"java/lang/Object", "Animal", "Dog", "Runnable"}
	got := p.Classes()
	if len(got) != len(want) {
		t.Fatalf("Classes() length = %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Name != want[i] {
			t.Fatalf("Classes()[%d] = %s, want %s", i, c.Name, want[i])
		}
	}
}
