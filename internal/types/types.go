// Package types defines value kind constants used throughout the application.
package types

// Kind describes the YAML type of a chart value.
type Kind string

// Value kind constants for consistent type representation.
const (
	Null    Kind = "null"
	String  Kind = "string"
	Number  Kind = "number"
	Boolean Kind = "boolean"
	Array   Kind = "array"
	Object  Kind = "object"
)

// IsCollection reports whether values of this kind hold other values.
func (k Kind) IsCollection() bool {
	return k == Array || k == Object
}

// Placeholder returns the README notation for an empty value of the kind.
// Scalars other than null and string have no placeholder.
func Placeholder(k Kind) string {
	switch k {
	case Null:
		return "nil"
	case String:
		return `""`
	case Array:
		return "[]"
	case Object:
		return "{}"
	default:
		return ""
	}
}
