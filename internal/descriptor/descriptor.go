/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package descriptor parses JVMS field and method descriptors. It is the
// one piece of bytecode-format trivia the spec leaves to "the round-trip
// of argument+return types" (spec §3, Method) without pinning exact
// grammar; this follows the type-letter switch the teacher's
// classloader/CPutils.go and (now-dropped) instantiate.go field-init code
// already assumed: "L", "[" for references/arrays, "B","C","I","J","S","Z"
// for the narrow/word primitives, "D","F" for the wide floats.
package descriptor

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind is the coarse category a descriptor collapses to for symbolic
// execution purposes -- BOOLEAN/BYTE/CHAR/SHORT all collapse to Int per
// JVM stack conventions (spec §3 Value).
type Kind int

const (
	Void Kind = iota
	Int
	Long
	Float
	Double
	Object
	Array
)

// Type is a parsed field/return descriptor: a Kind plus, for Object and
// Array, the class-internal-name/element descriptor text.
type Type struct {
	Kind Kind
	Name string // internal class name (Object) or full element descriptor (Array)
}

// IsWide reports whether a value of this type occupies two stack/local slots.
func (t Type) IsWide() bool { return t.Kind == Long || t.Kind == Double }

// ParseField parses a single field descriptor, e.g. "I", "Ljava/lang/String;", "[[I".
func ParseField(desc string) (Type, error) {
	t, rest, err := parseOne(desc)
	if err != nil {
		return Type{}, err
	}
	if rest != "" {
		return Type{}, errors.Errorf("descriptor: trailing data after %q: %q", desc, rest)
	}
	return t, nil
}

func parseOne(desc string) (Type, string, error) {
	if desc == "" {
		return Type{}, "", errors.New("descriptor: empty")
	}
	switch desc[0] {
	case 'B', 'C', 'I', 'S', 'Z':
		return Type{Kind: Int}, desc[1:], nil
	case 'J':
		return Type{Kind: Long}, desc[1:], nil
	case 'F':
		return Type{Kind: Float}, desc[1:], nil
	case 'D':
		return Type{Kind: Double}, desc[1:], nil
	case 'V':
		return Type{Kind: Void}, desc[1:], nil
	case 'L':
		idx := strings.IndexByte(desc, ';')
		if idx < 0 {
			return Type{}, "", errors.Errorf("descriptor: unterminated object type in %q", desc)
		}
		return Type{Kind: Object, Name: desc[1:idx]}, desc[idx+1:], nil
	case '[':
		elem, rest, err := parseOne(desc[1:])
		if err != nil {
			return Type{}, "", err
		}
		return Type{Kind: Array, Name: "[" + elemDescriptor(elem)}, rest, nil
	default:
		return Type{}, "", errors.Errorf("descriptor: unrecognized type tag %q in %q", desc[0], desc)
	}
}

// elemDescriptor reconstitutes the descriptor text for an already-parsed
// element type, used when rebuilding an array's own descriptor string.
func elemDescriptor(t Type) string {
	switch t.Kind {
	case Int, Long, Float, Double, Void:
		return primitiveLetter(t.Kind)
	case Object:
		return "L" + t.Name + ";"
	case Array:
		return t.Name
	}
	return ""
}

func primitiveLetter(k Kind) string {
	switch k {
	case Long:
		return "J"
	case Float:
		return "F"
	case Double:
		return "D"
	case Void:
		return "V"
	default:
		return "I"
	}
}

// Method is a parsed method descriptor: ordered argument types and a
// return type.
type Method struct {
	Args   []Type
	Return Type
}

// ParseMethod parses a method descriptor, e.g. "(ILjava/lang/String;)V".
func ParseMethod(desc string) (Method, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return Method{}, errors.Errorf("descriptor: method descriptor %q must start with '('", desc)
	}
	rest := desc[1:]
	var args []Type
	for {
		if rest == "" {
			return Method{}, errors.Errorf("descriptor: unterminated argument list in %q", desc)
		}
		if rest[0] == ')' {
			rest = rest[1:]
			break
		}
		var t Type
		var err error
		t, rest, err = parseOne(rest)
		if err != nil {
			return Method{}, err
		}
		args = append(args, t)
	}
	ret, tail, err := parseOne(rest)
	if err != nil {
		return Method{}, err
	}
	if tail != "" {
		return Method{}, errors.Errorf("descriptor: trailing data after return type in %q: %q", desc, tail)
	}
	return Method{Args: args, Return: ret}, nil
}

// ArrayElementDescriptor strips one leading "[" from an array descriptor,
// returning the element descriptor text (used by AALOAD result typing).
func ArrayElementDescriptor(arrayDesc string) string {
	return strings.TrimPrefix(arrayDesc, "[")
}

// PrependArrayDims returns desc prefixed with dims '[' characters, used by
// MULTIANEWARRAY's result type.
func PrependArrayDims(desc string, dims int) string {
	return strings.Repeat("[", dims) + desc
}
