/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classpool

// Access is the raw JVMS access_flags bitmask, shared by classes,
// methods, and fields. The teacher's classloader.go instead expands these
// into one bool field per flag (classIsPublic, classIsFinal, ...); this
// keeps the single raw int field the teacher also carries alongside those
// bools ("accessFlags int") and derives the named predicates from it on
// demand, rather than duplicating storage for each predicate.
type Access uint16

const (
	AccPublic       Access = 0x0001
	AccPrivate      Access = 0x0002
	AccProtected    Access = 0x0004
	AccStatic       Access = 0x0008
	AccFinal        Access = 0x0010
	AccSuper        Access = 0x0020
	AccSynchronized Access = 0x0020
	AccVolatile     Access = 0x0040
	AccBridge       Access = 0x0040
	AccTransient    Access = 0x0080
	AccVarargs      Access = 0x0080
	AccNative       Access = 0x0100
	AccInterface    Access = 0x0200
	AccAbstract     Access = 0x0400
	AccStrict       Access = 0x0800
	AccSynthetic    Access = 0x1000
	AccAnnotation   Access = 0x2000
	AccEnum         Access = 0x4000
	AccModule       Access = 0x8000
)

func (a Access) has(f Access) bool { return a&f != 0 }

func (a Access) IsPublic() bool       { return a.has(AccPublic) }
func (a Access) IsPrivate() bool      { return a.has(AccPrivate) }
func (a Access) IsProtected() bool    { return a.has(AccProtected) }
func (a Access) IsStatic() bool       { return a.has(AccStatic) }
func (a Access) IsFinal() bool        { return a.has(AccFinal) }
func (a Access) IsSuper() bool        { return a.has(AccSuper) }
func (a Access) IsSynchronized() bool { return a.has(AccSynchronized) }
func (a Access) IsVolatile() bool     { return a.has(AccVolatile) }
func (a Access) IsBridge() bool       { return a.has(AccBridge) }
func (a Access) IsTransient() bool    { return a.has(AccTransient) }
func (a Access) IsVarargs() bool      { return a.has(AccVarargs) }
func (a Access) IsNative() bool       { return a.has(AccNative) }
func (a Access) IsInterface() bool    { return a.has(AccInterface) }
func (a Access) IsAbstract() bool     { return a.has(AccAbstract) }
func (a Access) IsStrict() bool       { return a.has(AccStrict) }
func (a Access) IsSynthetic() bool    { return a.has(AccSynthetic) }
func (a Access) IsAnnotation() bool   { return a.has(AccAnnotation) }
func (a Access) IsEnum() bool         { return a.has(AccEnum) }
func (a Access) IsModule() bool       { return a.has(AccModule) }
