package cfg

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// Decoder reads and decodes a cfg document from an input stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the document from the input stream and stores the result in
// the value pointed to by v.
func (dec *Decoder) Decode(v any) error {
	c, err := ParseReader(dec.r)
	if err != nil {
		return err
	}
	return c.Decode(v)
}

// Unmarshal parses cfg data and stores the result in the value pointed to
// by v. If v is nil or not a pointer, it returns an error.
//
// It converts cfg values with the following mappings:
//   - int literals become int64
//   - float literals become float64
//   - true/false become bool
//   - string literals become string
//   - arrays and lists become []any
//   - structs (and the document itself) become map[string]any
//
// When decoding into a struct, fields are matched by the `cfg` tag if
// present, the field name otherwise; a tag of "-" skips the field.
func Unmarshal(data []byte, v any) error {
	c, err := Parse(data)
	if err != nil {
		return err
	}
	return c.Decode(v)
}

// Decode stores the loaded document in the value pointed to by v, mapping
// the tree as described for Unmarshal.
func (c *Config) Decode(v any) error {
	out, err := treeValue(c.Global())
	if err != nil {
		return err
	}
	return setValue(v, out)
}

// treeValue converts a parsed variable into its plain Go value.
func treeValue(v *Variable) (any, error) {
	switch v.Type() {
	case TypeInt:
		n, err := strconv.ParseInt(v.raw, 10, 64)
		if err != nil {
			return nil, errorf(ErrVariableParse, "failed to parse `%s` as int", v.raw)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(v.raw, 64)
		if err != nil {
			return nil, errorf(ErrVariableParse, "failed to parse `%s` as float", v.raw)
		}
		return f, nil
	case TypeBool:
		return v.raw == "true", nil
	case TypeString:
		return v.raw, nil
	case TypeArray, TypeList:
		out := make([]any, 0, len(v.kids))
		for _, kid := range v.kids {
			val, err := treeValue(kid)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case TypeStruct:
		out := make(map[string]any, len(v.kids))
		for _, kid := range v.kids {
			val, err := treeValue(kid)
			if err != nil {
				return nil, err
			}
			out[kid.name] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cfg: cannot convert %s variable", v.Type())
	}
}

// setValue sets the destination value from the parsed source value.
func setValue(dst, src any) error {
	if dst == nil {
		return errors.New("cfg: cannot unmarshal into a nil value")
	}

	val := reflect.ValueOf(dst)
	if val.Kind() != reflect.Ptr {
		return errors.New("cfg: destination is not a pointer")
	}
	if val.IsNil() {
		return errors.New("cfg: destination pointer is nil")
	}

	return setValueReflect(val.Elem(), src)
}

// setValueReflect recursively sets values to dst from src using reflection.
func setValueReflect(dst reflect.Value, src any) error {
	if src == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	s := reflect.ValueOf(src)

	// If the destination is an interface, set it directly.
	if dst.Kind() == reflect.Interface {
		dst.Set(s)
		return nil
	}

	// Assign directly if types are compatible.
	if s.Type().AssignableTo(dst.Type()) {
		dst.Set(s)
		return nil
	}

	switch dst.Kind() {
	case reflect.Struct:
		return setStruct(dst, src)
	case reflect.Slice:
		return setSlice(dst, src)
	case reflect.Map:
		return setMap(dst, src)
	case reflect.Ptr:
		return setPtr(dst, src)
	case reflect.String:
		return setString(dst, src)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setInt(dst, src)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return setUint(dst, src)
	case reflect.Float32, reflect.Float64:
		return setFloat(dst, src)
	case reflect.Bool:
		return setBool(dst, src)
	default:
		return fmt.Errorf("cfg: cannot unmarshal %T into %s", src, dst.Type())
	}
}

// setStruct unmarshals a struct variable's member map into a Go struct.
func setStruct(dst reflect.Value, src any) error {
	srcMap, ok := src.(map[string]any)
	if !ok {
		return fmt.Errorf("cfg: cannot unmarshal %T into struct", src)
	}

	structType := dst.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldValue := dst.Field(i)

		// Skip unexported fields.
		if !fieldValue.CanSet() {
			continue
		}

		name, _ := fieldTag(field)
		if name == "-" {
			continue
		}

		if srcValue, exists := srcMap[name]; exists {
			if err := setValueReflect(fieldValue, srcValue); err != nil {
				return fmt.Errorf("cfg: error setting field %s: %w", field.Name, err)
			}
		}
	}

	return nil
}

// fieldTag returns the member name and options for a struct field, from the
// `cfg` tag when present.
func fieldTag(field reflect.StructField) (name string, opts string) {
	tag := field.Tag.Get("cfg")
	if tag == "" {
		return field.Name, ""
	}
	name, opts, _ = strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, opts
}

// setSlice unmarshals an array or list into a slice.
func setSlice(dst reflect.Value, src any) error {
	srcSlice, ok := src.([]any)
	if !ok {
		return fmt.Errorf("cfg: cannot unmarshal %T into slice", src)
	}

	newSlice := reflect.MakeSlice(dst.Type(), len(srcSlice), len(srcSlice))
	for i, srcElem := range srcSlice {
		if err := setValueReflect(newSlice.Index(i), srcElem); err != nil {
			return fmt.Errorf("cfg: error setting slice element %d: %w", i, err)
		}
	}

	dst.Set(newSlice)
	return nil
}

// setMap unmarshals a struct variable's member map into a Go map.
func setMap(dst reflect.Value, src any) error {
	srcMap, ok := src.(map[string]any)
	if !ok {
		return fmt.Errorf("cfg: cannot unmarshal %T into map", src)
	}

	mapType := dst.Type()
	if mapType.Key().Kind() != reflect.String {
		return errors.New("cfg: maps with non-string keys are not supported")
	}

	newMap := reflect.MakeMap(mapType)
	for key, srcValue := range srcMap {
		valueValue := reflect.New(mapType.Elem()).Elem()
		if err := setValueReflect(valueValue, srcValue); err != nil {
			return fmt.Errorf("cfg: error setting map value for key %s: %w", key, err)
		}
		newMap.SetMapIndex(reflect.ValueOf(key), valueValue)
	}

	dst.Set(newMap)
	return nil
}

// setPtr unmarshals into a pointer, allocating it.
func setPtr(dst reflect.Value, src any) error {
	newPtr := reflect.New(dst.Type().Elem())
	if err := setValueReflect(newPtr.Elem(), src); err != nil {
		return err
	}
	dst.Set(newPtr)
	return nil
}

func setString(dst reflect.Value, src any) error {
	s, ok := src.(string)
	if !ok {
		return fmt.Errorf("cfg: cannot unmarshal %T into string", src)
	}
	dst.SetString(s)
	return nil
}

func setInt(dst reflect.Value, src any) error {
	n, ok := src.(int64)
	if !ok {
		return fmt.Errorf("cfg: cannot unmarshal %T into integer", src)
	}
	if dst.OverflowInt(n) {
		return fmt.Errorf("cfg: value %d overflows %s", n, dst.Type())
	}
	dst.SetInt(n)
	return nil
}

func setUint(dst reflect.Value, src any) error {
	n, ok := src.(int64)
	if !ok {
		return fmt.Errorf("cfg: cannot unmarshal %T into unsigned integer", src)
	}
	if n < 0 {
		return fmt.Errorf("cfg: cannot unmarshal negative value %d into unsigned integer", n)
	}
	if dst.OverflowUint(uint64(n)) {
		return fmt.Errorf("cfg: value %d overflows %s", n, dst.Type())
	}
	dst.SetUint(uint64(n))
	return nil
}

func setFloat(dst reflect.Value, src any) error {
	var f float64
	switch v := src.(type) {
	case float64:
		f = v
	case int64:
		// An int literal is acceptable where a float field is wanted.
		f = float64(v)
	default:
		return fmt.Errorf("cfg: cannot unmarshal %T into float", src)
	}
	if dst.OverflowFloat(f) {
		return fmt.Errorf("cfg: value %g overflows %s", f, dst.Type())
	}
	dst.SetFloat(f)
	return nil
}

func setBool(dst reflect.Value, src any) error {
	b, ok := src.(bool)
	if !ok {
		return fmt.Errorf("cfg: cannot unmarshal %T into bool", src)
	}
	dst.SetBool(b)
	return nil
}
