/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package analyzer

import (
	"strings"

	"github.com/archive-inital/asm/frame"
	"github.com/archive-inital/asm/internal/descriptor"
	"github.com/archive-inital/asm/opcodes"
)

// descToValue converts a parsed field/argument descriptor.Type into the
// symbolic frame.Value the analyzer pushes for it, plus whether it is wide.
func descToValue(t descriptor.Type) (frame.Value, bool) {
	switch t.Kind {
	case descriptor.Int:
		return frame.IntValue, false
	case descriptor.Long:
		return frame.LongValue, true
	case descriptor.Float:
		return frame.FloatVal, false
	case descriptor.Double:
		return frame.DoubleVal, true
	case descriptor.Object:
		return frame.ObjectValue(t.Name), false
	case descriptor.Array:
		return frame.ObjectValue(t.Name), false
	default: // Void, only valid for a method's return type
		return frame.Value{}, false
	}
}

// componentDescriptor returns the descriptor text for one array component
// named by an internal class name (ANEWARRAY's ClassRef), leaving an
// already-array-shaped component (one starting with '[') untouched.
func componentDescriptor(internalName string) string {
	if strings.HasPrefix(internalName, "[") {
		return internalName
	}
	return "L" + internalName + ";"
}

// arrayElementObject derives the symbolic element Value AALOAD pushes from
// its arrayref's own descriptor text (stripping one leading '[' and parsing
// what remains). An empty or unparseable descriptor degrades to a bare
// Object value -- analyzer behavior must not depend on it (spec §4.1).
func arrayElementObject(arrayDesc string) frame.Value {
	if arrayDesc == "" {
		return frame.ObjectValue("")
	}
	elem := descriptor.ArrayElementDescriptor(arrayDesc)
	t, err := descriptor.ParseField(elem)
	if err != nil {
		return frame.ObjectValue("")
	}
	v, _ := descToValue(t)
	return v
}

// newarrayElementLetter maps NEWARRAY's atype operand to its primitive
// descriptor letter (JVMS Table 6.5.newarray-A).
func newarrayElementLetter(atype int) string {
	switch atype {
	case opcodes.AT_BOOLEAN:
		return "Z"
	case opcodes.AT_CHAR:
		return "C"
	case opcodes.AT_FLOAT:
		return "F"
	case opcodes.AT_DOUBLE:
		return "D"
	case opcodes.AT_BYTE:
		return "B"
	case opcodes.AT_SHORT:
		return "S"
	case opcodes.AT_INT:
		return "I"
	case opcodes.AT_LONG:
		return "J"
	default:
		return "I"
	}
}
