// Package value models a parsed JSON document as a tree of tagged values.
//
// Value is a sealed interface: the concrete payloads are *Object, *Array,
// String, Number, True, False and Null, reached through a type switch.
// Objects and arrays own their children through dense record buffers.
package value

import (
	"github.com/lixenwraith/jv/buffer"
)

// Kind is the tag of a Value
type Kind uint8

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindTrue
	KindFalse
	KindNull
)

var kindNames = [...]string{
	KindObject: "object",
	KindArray:  "array",
	KindString: "string",
	KindNumber: "number",
	KindTrue:   "true",
	KindFalse:  "false",
	KindNull:   "null",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Value is one node of the document tree
type Value interface {
	Kind() Kind
	sealed()
}

// initialRecords is the record capacity of a freshly created container
const initialRecords = 8

// Member is one key/value record of an object
type Member struct {
	Key   string
	Value Value
}

// Object holds members in insertion order; duplicate keys are all kept
type Object struct {
	members buffer.Growable[Member]
}

// Array holds elements in order
type Array struct {
	elems buffer.Growable[Value]
}

// String is raw string bytes after escape processing, not necessarily valid UTF-8
type String string

// Number is a JSON number stored in single precision
type Number float32

type (
	True  struct{}
	False struct{}
	Null  struct{}
)

func NewObject() *Object {
	return &Object{members: buffer.Make[Member](initialRecords)}
}

func NewArray() *Array {
	return &Array{elems: buffer.Make[Value](initialRecords)}
}

// Bool returns True or False
func Bool(b bool) Value {
	if b {
		return True{}
	}
	return False{}
}

func (*Object) Kind() Kind { return KindObject }
func (*Array) Kind() Kind  { return KindArray }
func (String) Kind() Kind  { return KindString }
func (Number) Kind() Kind  { return KindNumber }
func (True) Kind() Kind    { return KindTrue }
func (False) Kind() Kind   { return KindFalse }
func (Null) Kind() Kind    { return KindNull }

func (*Object) sealed() {}
func (*Array) sealed()  {}
func (String) sealed()  {}
func (Number) sealed()  {}
func (True) sealed()    {}
func (False) sealed()   {}
func (Null) sealed()    {}

// Len returns the number of members
func (o *Object) Len() int { return o.members.Len() }

// At returns the member at index i
func (o *Object) At(i int) Member { return o.members.At(i) }

// Append adds a member; an existing member with the same key is not replaced
func (o *Object) Append(key string, v Value) {
	o.members.Append(Member{Key: key, Value: v})
}

// Members returns a read-only view of the member records
func (o *Object) Members() []Member { return o.members.Items() }

// Lookup returns the value of the first member with the given key
func (o *Object) Lookup(key string) (Value, bool) {
	for _, m := range o.members.Items() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Compact releases record headroom once the object is complete
func (o *Object) Compact() { o.members.ShrinkToFit() }

// Len returns the number of elements
func (a *Array) Len() int { return a.elems.Len() }

// At returns the element at index i
func (a *Array) At(i int) Value { return a.elems.At(i) }

// Append adds an element at the end
func (a *Array) Append(v Value) { a.elems.Append(v) }

// Elements returns a read-only view of the element records
func (a *Array) Elements() []Value { return a.elems.Items() }

// Compact releases record headroom once the array is complete
func (a *Array) Compact() { a.elems.ShrinkToFit() }

// IsContainer reports whether v is an object or array
func IsContainer(v Value) bool {
	switch v.(type) {
	case *Object, *Array:
		return true
	}
	return false
}

// ChildCount returns the number of children of a container, 0 for scalars
func ChildCount(v Value) int {
	switch c := v.(type) {
	case *Object:
		return c.Len()
	case *Array:
		return c.Len()
	}
	return 0
}

// Child returns the i-th child of a container. For objects key is the member
// key and isMember is true; arrays report isMember false.
func Child(v Value, i int) (key string, isMember bool, child Value) {
	switch c := v.(type) {
	case *Object:
		m := c.At(i)
		return m.Key, true, m.Value
	case *Array:
		return "", false, c.At(i)
	}
	panic("value: child of scalar " + v.Kind().String())
}

// Free releases every record buffer in the tree rooted at v.
// The tree must not be used afterwards.
func Free(v Value) {
	switch c := v.(type) {
	case *Object:
		for _, m := range c.members.Items() {
			Free(m.Value)
		}
		c.members.Free()
	case *Array:
		for _, e := range c.elems.Items() {
			Free(e)
		}
		c.elems.Free()
	}
}
