package domain

import "slices"

// ResolveSelection returns explicit when it is one of options, otherwise the first option.
// The zero value of T means no explicit choice was made.
func ResolveSelection[T comparable](explicit T, options []T) T {
	var zero T
	if len(options) == 0 {
		return zero
	}
	if explicit != zero && slices.Contains(options, explicit) {
		return explicit
	}
	return options[0]
}
