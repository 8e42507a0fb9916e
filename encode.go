package cfg

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Marshal returns the cfg encoding of v.
//
// The top-level value must be a struct or a string-keyed map, because a cfg
// document is a sequence of named declarations. The mapping from Go values
// to cfg is:
//   - bool -> true | false
//   - integers -> int literal
//   - floats -> float literal (always carrying a decimal point)
//   - string -> "quoted string"
//   - struct, map -> { name = value; ... } block
//   - []any -> ( ... ) heterogeneous list
//   - other slices and arrays -> [ ... ] homogeneous array
//
// Struct fields can be customized with `cfg` tags:
//
//	Field int `cfg:"my_field"`           // Renamed.
//	Field int `cfg:"my_field,omitempty"` // Omitted when zero.
//	Field int `cfg:"-"`                  // Always skipped.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// An Encoder writes cfg documents to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the cfg encoding of v to the stream. See the documentation
// for Marshal for details about the conversion.
func (enc *Encoder) Encode(v any) error {
	s := newState(enc.w)
	defer putState(s)

	val := indirect(reflect.ValueOf(v), &s.err)
	if s.err != nil {
		return s.err
	}
	if !val.IsValid() {
		return fmt.Errorf("cfg: cannot encode nil document")
	}

	switch val.Kind() {
	case reflect.Map, reflect.Struct:
		s.writeDecls(val, 0)
	default:
		return fmt.Errorf("cfg: document must be a struct or map, not %s", val.Kind())
	}
	return s.err
}

// state holds the encoding state for a single Marshal or Encode call.
type state struct {
	w   io.Writer
	err error
}

var statePool = sync.Pool{
	New: func() any {
		return new(state)
	},
}

func newState(w io.Writer) *state {
	s := statePool.Get().(*state)
	s.w = w
	return s
}

func putState(s *state) {
	s.w = nil
	s.err = nil
	statePool.Put(s)
}

// write writes a string to the output, stopping at the first error.
func (s *state) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

// writeDecls writes the declarations of a map or struct, one per line.
func (s *state) writeDecls(v reflect.Value, indent int) {
	switch v.Kind() {
	case reflect.Map:
		s.writeMapDecls(v, indent)
	case reflect.Struct:
		s.writeStructDecls(v, indent)
	}
}

// writeMapDecls writes a map as declarations. Keys are sorted so output is
// deterministic.
func (s *state) writeMapDecls(v reflect.Value, indent int) {
	if v.Type().Key().Kind() != reflect.String {
		s.err = fmt.Errorf("cfg: map key type must be a string, not %s", v.Type().Key())
		return
	}

	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	for _, key := range keys {
		s.writeDecl(key.String(), v.MapIndex(key), indent)
	}
}

// writeStructDecls writes a struct's exported fields as declarations.
func (s *state) writeStructDecls(v reflect.Value, indent int) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts := fieldTag(field)
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "omitempty") && isEmptyValue(v.Field(i)) {
			continue
		}
		s.writeDecl(name, v.Field(i), indent)
	}
}

// writeDecl writes one `name = value;` declaration.
func (s *state) writeDecl(name string, val reflect.Value, indent int) {
	if !bareNameRegex.MatchString(name) {
		s.err = fmt.Errorf("cfg: invalid declaration name %q", name)
		return
	}
	s.write(strings.Repeat(" ", indent))
	s.write(name)
	s.write(" = ")
	s.marshalValue(val, indent)
	s.write(";\n")
}

// marshalValue dispatches on the value's kind and writes its cfg form.
func (s *state) marshalValue(v reflect.Value, indent int) {
	if s.err != nil {
		return
	}

	v = indirect(v, &s.err)
	if s.err != nil {
		return
	}
	if !v.IsValid() {
		s.err = fmt.Errorf("cfg: cannot encode nil value, the format has no null literal")
		return
	}

	switch v.Kind() {
	case reflect.Map, reflect.Struct:
		s.write("{\n")
		s.writeDecls(v, indent+4)
		s.write(strings.Repeat(" ", indent))
		s.write("}")
	case reflect.Slice, reflect.Array:
		s.marshalSeq(v, indent)
	case reflect.String:
		s.write(quoteString(v.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.write(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s.write(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s.err = fmt.Errorf("cfg: cannot encode %v, the format has no literal for it", f)
			return
		}
		out := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(out, ".") {
			// A float must keep its decimal point or it re-parses as an int.
			out += ".0"
		}
		s.write(out)
	case reflect.Bool:
		s.write(strconv.FormatBool(v.Bool()))
	default:
		s.err = fmt.Errorf("cfg: unsupported type: %s", v.Type())
	}
}

// marshalSeq writes a slice or array. A []any becomes a heterogeneous
// ( ... ) list; any other element type becomes a homogeneous [ ... ] array.
func (s *state) marshalSeq(v reflect.Value, indent int) {
	open, closer := "[", "]"
	if v.Type().Elem().Kind() == reflect.Interface {
		open, closer = "(", ")"
	}

	s.write(open)
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			s.write(", ")
		}
		s.marshalValue(v.Index(i), indent)
	}
	s.write(closer)
}

// quoteString writes a double-quoted cfg string using the escapes the lexer
// understands.
func quoteString(str string) string {
	var b strings.Builder
	b.Grow(len(str) + 2)
	b.WriteByte('"')
	for i := 0; i < len(str); i++ {
		switch c := str[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// isEmptyValue reports whether the value is its type's zero value, for
// omitempty handling.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// A declaration name must lex as a single identifier: it cannot begin with a
// digit or contain delimiter characters.
var bareNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// indirect walks down pointers and interfaces to the concrete value. A nil
// pointer or interface yields an invalid value. The loop limit guards
// against circular chains.
func indirect(v reflect.Value, err *error) reflect.Value {
	for i := 0; i < 1000; i++ {
		if !v.IsValid() {
			return v
		}
		kind := v.Kind()
		if kind != reflect.Pointer && kind != reflect.Interface {
			return v
		}
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	*err = fmt.Errorf("cfg: encountered a circular or excessively deep data structure")
	return reflect.Value{}
}
