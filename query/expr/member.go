package expr

import (
	"reflect"
	"strings"
)

// MemberInfo describes a field or niladic method resolved on a static type.
type MemberInfo struct {
	// Name is the Go name of the member.
	Name string
	// Owner is the type the member was looked up on.
	Owner reflect.Type
	// Type is the type of the value the member produces.
	Type reflect.Type
	// Tag is the struct tag of a field member; empty for methods.
	Tag reflect.StructTag

	index  []int
	method int
	// embed is the path to the embedded field a promoted method comes from.
	embed []int
}

// IsMethod reports whether the member is a method rather than a field.
func (m *MemberInfo) IsMethod() bool { return m.method >= 0 }

// LookupMember resolves name on owner. Candidates are, in order: exported
// struct fields (promoted through exported embedded structs) of owner or
// of the struct owner points to, exported methods of owner taking no
// arguments and returning one value, and, if tag is not empty, exported
// fields whose tag value (up to the first comma) equals name. Matching is
// exact and case-sensitive.
func LookupMember(owner reflect.Type, name, tag string) (*MemberInfo, bool) {
	if owner == nil || name == "" {
		return nil, false
	}

	st := owner
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct {
		if f, ok := st.FieldByName(name); ok && f.IsExported() && reachable(st, f.Index) {
			return fieldMember(owner, f), true
		}
	}

	if m, ok := owner.MethodByName(name); ok {
		want := 1 // receiver
		if owner.Kind() == reflect.Interface {
			want = 0
		}
		if m.Type.NumIn() == want && m.Type.NumOut() == 1 {
			info := &MemberInfo{Name: m.Name, Owner: owner, Type: m.Type.Out(0), method: m.Index}
			if st.Kind() == reflect.Struct {
				info.embed = methodPath(st, name, owner.Kind() == reflect.Pointer, map[reflect.Type]bool{})
			}
			return info, true
		}
	}

	if tag != "" && st.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(st) {
			if !f.IsExported() || !reachable(st, f.Index) {
				continue
			}
			value, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if value == name {
				return fieldMember(owner, f), true
			}
		}
	}
	return nil, false
}

// reachable reports whether every embedded struct on the path to a promoted
// field is exported. Values read through an unexported embedding cannot be
// converted back to interfaces.
func reachable(st reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := st.Field(i)
		if !f.IsExported() {
			return false
		}
		st = f.Type
		if st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
	}
	return true
}

// methodPath returns the index path of the shallowest embedded field of st
// that provides method name, or nil when none does. addressable includes
// pointer-receiver methods of embedded values.
func methodPath(st reflect.Type, name string, addressable bool, seen map[reflect.Type]bool) []int {
	if seen[st] {
		return nil
	}
	seen[st] = true
	defer delete(seen, st)

	var best []int
	for i := range st.NumField() {
		f := st.Field(i)
		if !f.Anonymous || !hasMethod(f.Type, name, addressable) {
			continue
		}
		path := []int{i}
		inner := f.Type
		if inner.Kind() == reflect.Pointer {
			inner = inner.Elem()
		}
		if inner.Kind() == reflect.Struct {
			path = append(path, methodPath(inner, name, addressable || f.Type.Kind() == reflect.Pointer, seen)...)
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best
}

func hasMethod(t reflect.Type, name string, addressable bool) bool {
	if _, ok := t.MethodByName(name); ok {
		return true
	}
	if addressable && t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		_, ok := reflect.PointerTo(t).MethodByName(name)
		return ok
	}
	return false
}

func fieldMember(owner reflect.Type, f reflect.StructField) *MemberInfo {
	return &MemberInfo{
		Name:   f.Name,
		Owner:  owner,
		Type:   f.Type,
		Tag:    f.Tag,
		index:  f.Index,
		method: -1,
	}
}

// Get reads the member from v, a value of the owner type. It reports false
// when a nil pointer or nil interface stands in the way.
func (m *MemberInfo) Get(v reflect.Value) (reflect.Value, bool) {
	if m.IsMethod() {
		if (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) && v.IsNil() {
			return reflect.Value{}, false
		}
		if len(m.embed) > 0 {
			base := v
			if base.Kind() == reflect.Pointer {
				base = base.Elem()
			}
			recv, err := base.FieldByIndexErr(m.embed)
			if err != nil {
				return reflect.Value{}, false
			}
			if (recv.Kind() == reflect.Pointer || recv.Kind() == reflect.Interface) && recv.IsNil() {
				return reflect.Value{}, false
			}
		}
		return v.Method(m.method).Call(nil)[0], true
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	f, err := v.FieldByIndexErr(m.index)
	if err != nil {
		return reflect.Value{}, false
	}
	return f, true
}
