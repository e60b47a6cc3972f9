package util

// Unpack spreads a slice into the given variables.
// If the slice has fewer elements than variables, the remaining variables
// are left untouched; extra elements are ignored.
func Unpack[T any](toUnpack []T, unpackInto ...*T) {
	n := min(len(toUnpack), len(unpackInto))
	for i := 0; i < n; i++ {
		*unpackInto[i] = toUnpack[i]
	}
}
