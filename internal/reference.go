package internal

import (
	"fmt"
	"strings"
)

// referenceKind discriminates the Reference union.
type referenceKind uint8

const (
	refInline referenceKind = iota
	refNamed
	refNamedMethod
)

// Reference is a not-yet-resolved handler or middleware.
// It is one of: an inline value, a name looked up in the container or the
// type registry, or a name bound to a method of the resolved instance.
type Reference struct {
	value  any
	id     string
	method string
	kind   referenceKind
}

// Inline wraps an already constructed handler, middleware or callable.
func Inline(v any) Reference {
	return Reference{kind: refInline, value: v}
}

// Named refers to a container entry or registered type by id.
func Named(id string) Reference {
	return Reference{kind: refNamed, id: id}
}

// NamedMethod refers to method on the instance resolved for id.
func NamedMethod(id, method string) Reference {
	return Reference{kind: refNamedMethod, id: id, method: method}
}

// ParseReference converts "id" or "id:method" notation into a Reference.
// Only the first colon separates the id from the method.
func ParseReference(s string) Reference {
	if id, method, ok := strings.Cut(s, ":"); ok && id != "" && method != "" {
		return NamedMethod(id, method)
	}
	return Named(s)
}

// ToReference normalizes strings, References and inline values.
func ToReference(v any) Reference {
	switch ref := v.(type) {
	case Reference:
		return ref
	case *Reference:
		if ref != nil {
			return *ref
		}
	case string:
		return ParseReference(ref)
	}
	return Inline(v)
}

// IsInline reports whether the reference carries a value rather than a name.
func (r Reference) IsInline() bool {
	return r.kind == refInline
}

// Value returns the inline value, or nil for named references.
func (r Reference) Value() any {
	return r.value
}

// ID returns the name of a named reference.
func (r Reference) ID() string {
	return r.id
}

// Method returns the bound method name, if any.
func (r Reference) Method() string {
	return r.method
}

// String renders the reference in "id:method" notation.
func (r Reference) String() string {
	switch r.kind {
	case refNamed:
		return r.id
	case refNamedMethod:
		return r.id + ":" + r.method
	default:
		return fmt.Sprintf("%T", r.value)
	}
}
