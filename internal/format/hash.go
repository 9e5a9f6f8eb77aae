package format

import "github.com/go-faster/city"

// Hash64 is the 64-bit CityHash (v1.1) the cooker uses for name hashes.
func Hash64(b []byte) uint64 {
	return city.Hash64(b)
}

// NameHash returns the hash stored alongside each name table entry: Hash64
// over the name with ASCII letters folded to lower case. Non-ASCII bytes are
// hashed as-is.
func NameHash(name string) uint64 {
	return Hash64(asciiLower(name))
}

func asciiLower(s string) []byte {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return b
}
