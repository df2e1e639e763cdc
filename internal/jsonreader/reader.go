// Package jsonreader implements a cursor over a parsed JSON document: a
// stack of "current node" positions that callers descend into by member
// name or array index, and pop back out of, mirroring the shape of the
// upstream's nested response bodies (a top-level "result" holding an
// array of entities, each entity holding nested arrays like "hosts" or
// "applications").
//
// It is built on github.com/tidwall/gjson. The upstream wire-encodes
// numeric fields as JSON strings, so the numeric readers accept both
// forms: a JSON number goes through gjson's own Result.Int()/Uint(),
// and a JSON string is parsed with strconv.
package jsonreader

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Reader navigates a JSON document by member name and array index.
type Reader struct {
	stack []gjson.Result
}

// New parses body and returns a Reader positioned at the document root.
func New(body []byte) (*Reader, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ParseError{Path: "$", Reason: "invalid JSON"}
	}
	return &Reader{stack: []gjson.Result{gjson.ParseBytes(body)}}, nil
}

func (r *Reader) current() gjson.Result {
	return r.stack[len(r.stack)-1]
}

// EnterObject descends into a named member of the current node. The
// member may itself be a JSON object or array — the upstream's own
// "result" field is a named member holding an array, and the reader must
// navigate into it the same way it navigates into a genuine nested
// object such as an entity's "hosts" member.
func (r *Reader) EnterObject(name string) error {
	child := r.current().Get(name)
	if !child.Exists() {
		return &ParseError{Path: name, Reason: "member not found"}
	}
	if !child.IsObject() && !child.IsArray() {
		return &ParseError{Path: name, Reason: "member is not an object or array"}
	}
	r.stack = append(r.stack, child)
	return nil
}

// LeaveObject pops the node pushed by the matching EnterObject.
func (r *Reader) LeaveObject() {
	r.pop()
}

func (r *Reader) pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// CountElements reports the size of the current array. It is 0 if the
// current node is not an array.
func (r *Reader) CountElements() int {
	cur := r.current()
	if !cur.IsArray() {
		return 0
	}
	return len(cur.Array())
}

// EnterElement descends into the i-th element of the current array.
func (r *Reader) EnterElement(i int) error {
	cur := r.current()
	elems := cur.Array()
	if i < 0 || i >= len(elems) {
		return &ParseError{Path: strconv.Itoa(i), Reason: "index out of range"}
	}
	r.stack = append(r.stack, elems[i])
	return nil
}

// LeaveElement pops the node pushed by the matching EnterElement.
func (r *Reader) LeaveElement() {
	r.pop()
}

// ReadString reads a named member as a string.
func (r *Reader) ReadString(name string) (string, error) {
	v := r.current().Get(name)
	if !v.Exists() {
		return "", &ParseError{Path: name, Reason: "member not found"}
	}
	if v.Type != gjson.String && v.Type != gjson.Number && v.Type != gjson.Null {
		return "", &ParseError{Path: name, Reason: "member is not a scalar"}
	}
	return v.String(), nil
}

// ReadInt reads a named member as a signed integer. The upstream encodes
// numeric fields as JSON strings; both strings and JSON numbers are
// accepted. Strings are parsed as strict base-10 integers (strconv.Atoi);
// JSON numbers are converted by gjson, which drops any fractional part.
func (r *Reader) ReadInt(name string) (int, error) {
	v := r.current().Get(name)
	if !v.Exists() {
		return 0, &ParseError{Path: name, Reason: "member not found"}
	}
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), nil
	case gjson.String:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, &ParseError{Path: name, Reason: "not a base-10 integer: " + err.Error()}
		}
		return n, nil
	default:
		return 0, &ParseError{Path: name, Reason: "member is not numeric"}
	}
}

// ReadUint64 reads a named member as an unsigned 64-bit integer, with the
// same string/number tolerance as ReadInt.
func (r *Reader) ReadUint64(name string) (uint64, error) {
	v := r.current().Get(name)
	if !v.Exists() {
		return 0, &ParseError{Path: name, Reason: "member not found"}
	}
	switch v.Type {
	case gjson.Number:
		if v.Num < 0 {
			return 0, &ParseError{Path: name, Reason: "negative value for unsigned field"}
		}
		return v.Uint(), nil
	case gjson.String:
		n, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return 0, &ParseError{Path: name, Reason: "not a base-10 unsigned integer: " + err.Error()}
		}
		return n, nil
	default:
		return 0, &ParseError{Path: name, Reason: "member is not numeric"}
	}
}
