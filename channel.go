package main

import "reflect"

// maxChannelSlots bounds how many leading arguments are treated as channel
// data; anything past this is forwarded untouched.
const maxChannelSlots = 4

// legacyChannelMax is the upper bound of the legacy channel convention.
const legacyChannelMax = 255.0

// callShape tags how channel values were supplied to a color call.
type callShape int

const (
	// shapePositional means channel values arrived as separate arguments.
	shapePositional callShape = iota
	// shapeAggregate means a single ordered collection carried all channels.
	shapeAggregate
)

// colorCall is the classified form of a color call: the shape decided once at
// the boundary plus the slot values to convert and forward.
type colorCall struct {
	shape callShape
	slots []any
}

// classifyColorCall decides the call shape exactly once. A single argument
// that is an ordered, indexable collection makes the call aggregate-shaped;
// its elements are copied out (capped at maxChannelSlots) so the caller's
// collection is never written. Everything else is positional-shaped and the
// argument list is used as-is.
func classifyColorCall(args []any) colorCall {
	if len(args) == 1 {
		if elems, ok := aggregateElements(args[0]); ok {
			return colorCall{shape: shapeAggregate, slots: elems}
		}
	}
	return colorCall{shape: shapePositional, slots: args}
}

// aggregateElements copies the elements of a slice or array value into a new
// collection, capped at maxChannelSlots. Strings and scalars are not
// aggregates.
func aggregateElements(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	n := rv.Len()
	if n > maxChannelSlots {
		n = maxChannelSlots
	}
	elems := make([]any, n)
	for i := 0; i < n; i++ {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}

// converted returns the argument list to hand to the native entry point. For
// aggregate calls the already-copied elements are converted in place; for
// positional calls a fresh list is built so the adapter never rewrites the
// slice variadic callers handed in. Slots past maxChannelSlots keep their
// original values and positions.
func (c colorCall) converted() []any {
	out := c.slots
	if c.shape == shapePositional {
		out = make([]any, len(c.slots))
		copy(out, c.slots)
	}
	limit := len(out)
	if limit > maxChannelSlots {
		limit = maxChannelSlots
	}
	for i := 0; i < limit; i++ {
		out[i] = convertChannel(out[i])
	}
	return out
}

// convertChannel rescales a single channel slot from the legacy [0,255]
// convention to the target [0,1] convention. Values at or below 1 are assumed
// to already be in the target domain and pass through untouched, as do
// non-numeric slots; the native entry point decides what to do with those.
// A bare value of exactly 1 is ambiguous between the two conventions and is
// deliberately not rescaled.
func convertChannel(v any) any {
	f, ok := channelFloat(v)
	if !ok {
		return v
	}
	if f > 1 {
		return f / legacyChannelMax
	}
	return v
}

// channelFloat widens any numeric slot value to float64. The bool result
// reports whether the value was numeric at all.
func channelFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
