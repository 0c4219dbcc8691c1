package catalog

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a FieldValue holds.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
)

// FieldValue is a single collected answer: a string, a number, a boolean or
// an ordered list of strings.
type FieldValue struct {
	kind Kind
	str  string
	num  float64
	flag bool
	list []string
}

// Text returns a string FieldValue.
func Text(s string) FieldValue { return FieldValue{kind: KindString, str: s} }

// Number returns a numeric FieldValue.
func Number(n float64) FieldValue { return FieldValue{kind: KindNumber, num: n} }

// Bool returns a boolean FieldValue.
func Bool(b bool) FieldValue { return FieldValue{kind: KindBool, flag: b} }

// List returns a string-sequence FieldValue. The slice is copied.
func List(items ...string) FieldValue {
	return FieldValue{kind: KindList, list: append([]string{}, items...)}
}

// Kind reports the variant held by v.
func (v FieldValue) Kind() Kind { return v.kind }

// AsText returns the string value and whether v holds one.
func (v FieldValue) AsText() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric value and whether v holds one.
func (v FieldValue) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean value and whether v holds one.
func (v FieldValue) AsBool() (bool, bool) { return v.flag, v.kind == KindBool }

// AsList returns a copy of the list value and whether v holds one.
func (v FieldValue) AsList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Equal reports whether two values hold the same variant and contents.
func (v FieldValue) Equal(o FieldValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.flag == o.flag
	case KindList:
		return slices.Equal(v.list, o.list)
	}
	return true
}

// String renders the value for display.
func (v FieldValue) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.flag {
			return "Yes"
		}
		return "No"
	case KindList:
		return strings.Join(v.list, ", ")
	}
	return ""
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.flag)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return nil, fmt.Errorf("marshal field value: empty value")
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = Text(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	case []any:
		items := make([]string, 0, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("field value list item %d: expected string, got %T", i, item)
			}
			items = append(items, s)
		}
		*v = List(items...)
	default:
		return fmt.Errorf("field value: unsupported JSON type %T", raw)
	}
	return nil
}

// FieldMap holds collected answers keyed by field name. An absent key means
// the field has not been provided yet.
type FieldMap map[string]FieldValue

// Merge copies every entry of partial into m, overwriting existing keys.
// Zero FieldValues carry no answer and are skipped.
func (m FieldMap) Merge(partial FieldMap) {
	for k, v := range partial {
		if v.Kind() == KindNone {
			continue
		}
		m[k] = v
	}
}

// Clone returns an independent copy of m.
func (m FieldMap) Clone() FieldMap {
	out := make(FieldMap, len(m))
	for k, v := range m {
		if v.kind == KindList {
			v.list = slices.Clone(v.list)
		}
		out[k] = v
	}
	return out
}

// Keys returns the keys of m in sorted order.
func (m FieldMap) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}
