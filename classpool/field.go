/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classpool

// Field is owned by exactly one Class (spec §3, Field).
type Field struct {
	Owner    *Class
	Access   Access
	Name     string
	Desc     string
	Constant any // the constant initializer, if any was declared; nil otherwise
}
