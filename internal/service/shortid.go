package service

import "github.com/google/uuid"

// ShortIDLength is the number of characters in a generated short ID
const ShortIDLength = 6

// IDGenerator produces a new short ID. An empty string signals failure.
type IDGenerator func() string

// GenerateShortID returns the first six characters of a fresh version-4 UUID
// in its canonical 8-4-4-4-12 form. The first hyphen sits at index 8, so the
// result is always six characters from [0-9a-f].
//
// The store is not consulted; collisions are possible (16^6 ≈ 16.7M values).
func GenerateShortID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	return id.String()[:ShortIDLength]
}
