/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package frame is the frame graph (spec §4.3): typed per-instruction
// snapshots of the symbolic stack and LVT, threaded together by
// producer/consumer edges, with a lazily-computed constant-propagation
// flag.
package frame

// ValueType is the symbolic type carried by one stack or local slot
// (spec §3, Value). BOOLEAN/BYTE/CHAR/SHORT are not distinct members --
// they collapse to Int per JVM stack conventions before a Value is ever
// constructed.
type ValueType int

const (
	Top ValueType = iota
	Int
	Long
	Float
	Double
	Null
	UninitializedThis
	Object
	Uninitialized
)

func (t ValueType) String() string {
	switch t {
	case Top:
		return "TOP"
	case Int:
		return "INT"
	case Long:
		return "LONG"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case Null:
		return "NULL"
	case UninitializedThis:
		return "UNINITIALIZED_THIS"
	case Object:
		return "OBJECT"
	case Uninitialized:
		return "UNINITIALIZED"
	default:
		return "?"
	}
}

// Value is one recorded stack or local slot: a type plus an optional
// descriptor (the internal class name for Object/UninitializedThis, or
// the new-site type descriptor for Uninitialized). LONG and DOUBLE are
// wide: spec §8 requires they occupy two consecutive slots in every
// snapshot, so a wide Value is paired with a Top placeholder rather than
// being duplicated (spec §9 design note). In a locals snapshot the
// placeholder follows the value at the next index; in a bottom-to-top stack
// snapshot it sits directly beneath the value.
type Value struct {
	Type ValueType
	Desc string

	// UninitID distinguishes one not-yet-<init>-ed object from another of
	// the same type, for UninitializedThis and Uninitialized values only.
	// Zero means "no identity tracked". The analyzer assigns one at NEW
	// (and at method entry for UninitializedThis) so that INVOKESPECIAL on
	// a <init> can find and flip every occurrence of the same not-yet-
	// initialized object across the current stack and locals (spec
	// §4.5.3's "mark the receiver slot initialized" -- the JVM verifier's
	// rule is that initializing one occurrence initializes all aliases of
	// it, not just the one consumed as the call's receiver).
	UninitID int
}

// IsWide reports whether this value occupies two stack/local slots.
func (v Value) IsWide() bool { return v.Type == Long || v.Type == Double }

var (
	TopValue  = Value{Type: Top}
	IntValue  = Value{Type: Int}
	LongValue = Value{Type: Long}
	FloatVal  = Value{Type: Float}
	DoubleVal = Value{Type: Double}
	NullValue = Value{Type: Null}
)

// ObjectValue returns an Object-typed value with the given internal class name.
func ObjectValue(internalName string) Value { return Value{Type: Object, Desc: internalName} }

// UninitializedValue returns an Uninitialized value for a not-yet-`<init>`-ed
// object created at the NEW site identified by desc (the target class), with
// no identity tracked.
func UninitializedValue(desc string) Value { return Value{Type: Uninitialized, Desc: desc} }

// UninitializedValueWithID is UninitializedValue plus an identity that
// INVOKESPECIAL's initialization sweep can match against later aliases of
// the same not-yet-initialized object (DUP'd copies, locals it was stored
// into).
func UninitializedValueWithID(desc string, id int) Value {
	return Value{Type: Uninitialized, Desc: desc, UninitID: id}
}

// UninitializedThisValue returns the UNINITIALIZED_THIS value seeded into
// slot 0 of a constructor's LVT (spec §4.5.1), with no identity tracked.
func UninitializedThisValue(ownerInternalName string) Value {
	return Value{Type: UninitializedThis, Desc: ownerInternalName}
}

// UninitializedThisValueWithID is UninitializedThisValue plus a tracked
// identity (see UninitializedValueWithID).
func UninitializedThisValueWithID(ownerInternalName string, id int) Value {
	return Value{Type: UninitializedThis, Desc: ownerInternalName, UninitID: id}
}
