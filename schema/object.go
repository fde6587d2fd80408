package schema

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"

	j "github.com/goccy/go-json"
)

// field is one declared descriptor of an object schema.
type field struct {
	name     string // internal name; key of the validated record
	alias    string // wire name; lookup key when set
	typ      Type
	required bool
	hasDef   bool
	def      any // normalized through a JSON round-trip at declaration time
}

// key returns the lookup key: the alias when one is declared, the internal
// name otherwise. Error paths also use this key, since it is what appears in
// payloads.
func (f *field) key() string {
	if f.alias != "" {
		return f.alias
	}
	return f.name
}

// ObjectBuilder assembles an object schema from field declarations.
type ObjectBuilder struct {
	fields []*field
	err    error
}

// Object starts a new object schema declaration.
func Object() *ObjectBuilder {
	return &ObjectBuilder{}
}

// Field declares a field by internal name and type. Modifiers on the
// returned chain scope to this field; Field and Build continue the
// declaration.
func (b *ObjectBuilder) Field(name string, t Type) *FieldChain {
	for _, ex := range b.fields {
		if ex.name == name && b.err == nil {
			b.err = fmt.Errorf("schema: duplicate field %q", name)
		}
	}
	f := &field{name: name, typ: t}
	b.fields = append(b.fields, f)
	return &FieldChain{b: b, f: f}
}

// Build finalizes the declaration into an untyped object Type producing
// map[string]any records keyed by internal field names.
func (b *ObjectBuilder) Build() (Type, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &objectType{fields: b.fields}, nil
}

// FieldChain scopes modifiers to the field that opened it.
type FieldChain struct {
	b *ObjectBuilder
	f *field
}

// Alias sets the wire name the value is looked up under.
func (c *FieldChain) Alias(wire string) *FieldChain {
	c.f.alias = wire
	return c
}

// Required marks the field as mandatory.
func (c *FieldChain) Required() *FieldChain {
	c.f.required = true
	return c
}

// Default substitutes v when the field is absent from the input. v is
// normalized through a JSON round-trip so declared Go literals are validated
// by the field's type exactly like payload data.
func (c *FieldChain) Default(v any) *FieldChain {
	nv, err := normalizeDefault(v)
	if err != nil && c.b.err == nil {
		c.b.err = fmt.Errorf("schema: default for %q: %w", c.f.name, err)
		return c
	}
	c.f.def = nv
	c.f.hasDef = true
	return c
}

// Field opens the next field declaration on the enclosing builder.
func (c *FieldChain) Field(name string, t Type) *FieldChain {
	return c.b.Field(name, t)
}

// Build finalizes the enclosing object declaration.
func (c *FieldChain) Build() (Type, error) {
	return c.b.Build()
}

// builder is satisfied by both ObjectBuilder and FieldChain so Bind can take
// a declaration wherever the chain happens to end.
type builder interface {
	Build() (Type, error)
}

func normalizeDefault(v any) (any, error) {
	raw, err := j.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := j.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// objectType interprets field descriptors against a decoded JSON object.
type objectType struct {
	fields []*field
}

// Parse validates m field by field. Unknown input keys are ignored for
// forward compatibility. Null is a value, not absence: a null on a
// non-nullable field is an invalid_type, while an absent optional field is
// defaulted or omitted from the record.
func (o *objectType) Parse(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue("object", v)
	}
	out := make(map[string]any, len(o.fields))
	var iss Issues
	for _, f := range o.fields {
		key := f.key()
		raw, present := m[key]
		if !present {
			switch {
			case f.required:
				iss = append(iss, Issue{Path: "/" + key, Code: CodeRequired, Message: "required field is missing"})
			case f.hasDef:
				cv, err := f.typ.Parse(ctx, f.def)
				if err != nil {
					iss = append(iss, rebaseErr(key, err)...)
					continue
				}
				out[f.name] = cv
			}
			continue
		}
		cv, err := f.typ.Parse(ctx, raw)
		if err != nil {
			iss = append(iss, rebaseErr(key, err)...)
			continue
		}
		out[f.name] = cv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Bind finalizes the declaration and binds its records to struct type T by
// matching each field's wire key against T's json tags.
func Bind[T any](b builder) (Schema[T], error) {
	t, err := b.Build()
	if err != nil {
		return nil, err
	}
	ot, ok := t.(*objectType)
	if !ok {
		return nil, fmt.Errorf("schema: Bind requires an object declaration")
	}
	var probe T
	rt := reflect.TypeOf(probe)
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: Bind requires a struct type, got %T", probe)
	}
	idx := fieldIndexByTag(rt)
	binds := make([]bindField, 0, len(ot.fields))
	for _, f := range ot.fields {
		i, ok := idx[f.key()]
		if !ok {
			return nil, fmt.Errorf("schema: no field tagged %q in %s", f.key(), rt)
		}
		binds = append(binds, bindField{rec: f.name, idx: i})
	}
	return &boundSchema[T]{obj: ot, binds: binds, rt: rt}, nil
}

// MustBind is Bind for package-level schema declarations; it panics on a
// malformed binding.
func MustBind[T any](b builder) Schema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

type bindField struct {
	rec string // record key (internal field name)
	idx int    // struct field index
}

// boundSchema validates with the underlying object type, then reflects the
// record into a fresh T.
type boundSchema[T any] struct {
	obj   *objectType
	binds []bindField
	rt    reflect.Type
}

func (s *boundSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	cv, err := s.obj.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	rec := cv.(map[string]any)
	out := reflect.New(s.rt).Elem()
	for _, bf := range s.binds {
		rv, ok := rec[bf.rec]
		if !ok {
			continue // optional without default keeps the zero value
		}
		if err := assign(out.Field(bf.idx), rv); err != nil {
			return zero, Issues{Issue{
				Path:    "/" + bf.rec,
				Code:    CodeParseError,
				Message: err.Error(),
				Cause:   err,
			}}
		}
	}
	return out.Interface().(T), nil
}

// assign sets dst from a canonical record value, recursing through pointers
// and slices and converting between compatible kinds (int64 into int,
// string into named string types).
func assign(dst reflect.Value, v any) error {
	dt := dst.Type()
	if v == nil {
		dst.Set(reflect.Zero(dt))
		return nil
	}
	if dt.Kind() == reflect.Pointer {
		p := reflect.New(dt.Elem())
		if err := assign(p.Elem(), v); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dt) {
		dst.Set(rv)
		return nil
	}
	if dt.Kind() == reflect.Slice {
		if arr, ok := v.([]any); ok {
			out := reflect.MakeSlice(dt, len(arr), len(arr))
			for i, ev := range arr {
				if err := assign(out.Index(i), ev); err != nil {
					return err
				}
			}
			dst.Set(out)
			return nil
		}
	}
	if rv.Type().ConvertibleTo(dt) {
		dst.Set(rv.Convert(dt))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", v, dt)
}

// fieldIndexByTag maps each exported field's json tag name (or field name
// when untagged) to its index.
func fieldIndexByTag(rt reflect.Type) map[string]int {
	idx := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			if c := strings.Index(tag, ","); c >= 0 {
				tag = tag[:c]
			}
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		idx[name] = i
	}
	return idx
}
