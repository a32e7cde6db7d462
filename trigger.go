package formskema

// Target carries the name and raw value of the control an event fired on.
type Target struct {
	Name  string
	Value any
}

// Event is the blur-event shape accepted by HandleFieldTrigger for callers
// that forward UI events instead of field names.
type Event struct {
	Target Target
}

// resolveTrigger turns a trigger into a (field, value) pair. For event
// triggers the bound value wins when the field exists in values; otherwise
// the event's own value is used, so callers can validate raw input before it
// is bound.
func resolveTrigger(trigger any, values Values) (string, any, error) {
	switch t := trigger.(type) {
	case string:
		return t, values[t], nil
	case Event:
		return resolveEvent(t, values)
	case *Event:
		if t == nil {
			return "", nil, ErrUnsupportedTrigger
		}
		return resolveEvent(*t, values)
	default:
		return "", nil, ErrUnsupportedTrigger
	}
}

func resolveEvent(ev Event, values Values) (string, any, error) {
	name := ev.Target.Name
	if name == "" {
		return "", nil, ErrMissingNameAttribute
	}
	if v, ok := values[name]; ok {
		return name, v, nil
	}
	return name, ev.Target.Value, nil
}
