package model

import (
	"errors"
	"fmt"
)

var ErrInvalidIndex = errors.New("model: index out of range")

// Move removes the element at from and reinserts it at to within the remaining
// sequence. Both indices must lie in [0, len(items)). The input is not modified.
func Move[T any](items []T, from, to int) ([]T, error) {
	n := len(items)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("%w: from=%d len=%d", ErrInvalidIndex, from, n)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("%w: to=%d len=%d", ErrInvalidIndex, to, n)
	}
	out := make([]T, 0, n)
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	moved := items[from]
	out = append(out, moved)
	copy(out[to+1:], out[to:n-1])
	out[to] = moved
	return out, nil
}
