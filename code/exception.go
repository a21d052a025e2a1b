/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package code

import "github.com/archive-inital/asm/ref"

// Exception is one try/catch block entry (spec §3, Code.Exception):
// [Start, End) is the protected range, Handler is the first instruction
// of the catch block, and Catch is the caught type -- nil means "catches
// everything" (a finally block).
type Exception struct {
	Start   *Label
	End     *Label
	Handler *Label
	Catch   *ref.ClassRef
}
