package formskema

import (
	"reflect"
	"sort"
)

// changedKeys returns the names present in prev whose value differs in next,
// sorted for deterministic iteration.
func changedKeys(prev, next Values) []string {
	var out []string
	for name, pv := range prev {
		if !shallowEqual(pv, next[name]) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// shallowEqual compares two raw values the way the values cell hands them
// over: comparable dynamic types use ==, slices/maps/funcs compare by
// reference, anything else non-comparable counts as changed.
func shallowEqual(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	if !ta.Comparable() {
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		switch ta.Kind() {
		case reflect.Slice:
			return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
		case reflect.Map, reflect.Func:
			return va.Pointer() == vb.Pointer()
		}
		return false
	}
	return a == b
}
