package ref

import "strings"

// Ref is an ordered sequence of name segments identifying a location in the
// hierarchical namespace (e.g. main.vm.ip). The zero value is the root.
type Ref []string

func New(segments ...string) Ref {
	r := make(Ref, len(segments))
	copy(r, segments)
	return r
}

// Parse splits a dotted path into a Ref. An empty string is the root.
func Parse(s string) Ref {
	if s == "" {
		return Ref{}
	}
	return Ref(strings.Split(s, "."))
}

func (r Ref) String() string {
	return strings.Join(r, ".")
}

func (r Ref) Equal(other Ref) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether r's segments are a leading subsequence of
// other's. A reference is a prefix of itself.
func (r Ref) IsPrefixOf(other Ref) bool {
	if len(r) > len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// Qualify prepends the namespace, producing the fully qualified form.
func (r Ref) Qualify(namespace Ref) Ref {
	q := make(Ref, 0, len(namespace)+len(r))
	q = append(q, namespace...)
	q = append(q, r...)
	return q
}

// Append returns a new Ref with one more trailing segment.
func (r Ref) Append(segment string) Ref {
	q := make(Ref, 0, len(r)+1)
	q = append(q, r...)
	q = append(q, segment)
	return q
}

// Parent drops the last segment. The parent of the root is the root.
func (r Ref) Parent() Ref {
	if len(r) == 0 {
		return Ref{}
	}
	return r[:len(r)-1:len(r)-1]
}

// Last returns the final segment, or "" for the root.
func (r Ref) Last() string {
	if len(r) == 0 {
		return ""
	}
	return r[len(r)-1]
}

// StripPrefix removes a leading prefix, returning the remainder and whether
// the prefix matched.
func (r Ref) StripPrefix(prefix Ref) (Ref, bool) {
	if !prefix.IsPrefixOf(r) {
		return nil, false
	}
	rest := r[len(prefix):]
	out := make(Ref, len(rest))
	copy(out, rest)
	return out, true
}
