package utils

import "github.com/google/uuid"

// UUIDGenerator produces UUIDv7 identifiers for correlation IDs and
// idempotency keys. v7 keeps identifiers time-sortable in logs.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to v4 if the
// monotonic source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
