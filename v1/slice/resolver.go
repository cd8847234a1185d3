package slice

import (
	"strconv"
	"strings"
)

const separator = ":"

// Descriptor is a parsed slice descriptor. A nil field means the value was
// left empty and is defaulted against the step sign when indexes are generated.
type Descriptor struct {
	Start *int
	Stop  *int
	Step  *int

	// toEnd marks the bare "i" form, which selects from i to the end of the
	// sequence rather than the single element at i.
	toEnd bool
}

// Resolve parses text and returns the indexes it selects in a sequence of
// length n.
//
// A nil slice with a nil error means no slicing was requested: text is empty,
// every field is empty (":" or "::"), or n is zero. A non-nil empty slice
// means the slice applies but selects nothing.
//
// Example:
//
//	idx, err := slice.Resolve("::-1", 5) // [4 3 2 1 0]
func Resolve(text string, n int) ([]int, error) {
	if text == "" {
		return nil, nil
	}

	d, err := Parse(text)
	if err != nil {
		return nil, err
	}

	return d.Indexes(n), nil
}

// Parse splits text into a Descriptor without looking at any sequence.
func Parse(text string) (Descriptor, error) {
	fields := strings.Split(text, separator)
	if len(fields) > 3 {
		return Descriptor{}, newDescriptorError(text, ErrInvalidFormat)
	}

	var d Descriptor
	values := make([]*int, len(fields))
	for i, field := range fields {
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return Descriptor{}, newDescriptorError(text, ErrInvalidFormat)
		}
		values[i] = &v
	}

	switch len(values) {
	case 1:
		d.Start = values[0]
		d.toEnd = true
	case 2:
		d.Start, d.Stop = values[0], values[1]
	case 3:
		d.Start, d.Stop, d.Step = values[0], values[1], values[2]
	}

	if d.Step != nil && *d.Step == 0 {
		return Descriptor{}, newDescriptorError(text, ErrZeroStep)
	}

	return d, nil
}

// IsUnrestricted reports whether every field of d was left empty.
func (d Descriptor) IsUnrestricted() bool {
	return d.Start == nil && d.Stop == nil && d.Step == nil
}

// Indexes generates the indexes d selects in a sequence of length n.
// It returns nil when d places no restriction or n is not positive.
func (d Descriptor) Indexes(n int) []int {
	if n <= 0 || d.IsUnrestricted() {
		return nil
	}

	step := 1
	if d.Step != nil {
		step = *d.Step
	}

	var start, stop int
	if step > 0 {
		start, stop = 0, n
	} else {
		start, stop = n-1, -1
	}
	if d.Start != nil {
		start = normalize(*d.Start, n)
	}
	if d.Stop != nil {
		stop = normalize(*d.Stop, n)
	}
	if d.toEnd {
		stop = n
	}

	if step > 0 {
		return ascending(start, min(stop, n), step)
	}
	return descending(start, max(stop, -1), step, n)
}

// ascending walks up from start by step, emitting only values in [0, stop).
// The stride and offsets are kept unsigned so extreme fields cannot wrap.
func ascending(start, stop, step int) []int {
	stride := uint(step)

	first := start
	if start < 0 {
		// first in-range value reachable from start
		first = int((stride - magnitude(start)%stride) % stride)
	}
	if first >= stop {
		return []int{}
	}

	count := uint(stop-first-1)/stride + 1
	indexes := make([]int, 0, count)
	for j := uint(0); j < count; j++ {
		indexes = append(indexes, first+int(j*stride))
	}
	return indexes
}

// descending walks down from start by step, emitting only values in (stop, n).
func descending(start, stop, step, n int) []int {
	stride := magnitude(step)

	first := start
	if start > n-1 {
		over := uint(start - (n - 1))
		first = (n - 1) - int((stride-over%stride)%stride)
	}
	if first <= stop {
		return []int{}
	}

	count := uint(first-stop-1)/stride + 1
	indexes := make([]int, 0, count)
	for j := uint(0); j < count; j++ {
		indexes = append(indexes, first-int(j*stride))
	}
	return indexes
}

func normalize(i, n int) int {
	if i < 0 {
		return i + n
	}
	return i
}

// magnitude returns |i| without overflowing on math.MinInt.
func magnitude(i int) uint {
	if i >= 0 {
		return uint(i)
	}
	return uint(-(i + 1)) + 1
}
