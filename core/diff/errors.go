package diff

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceRead is returned when a source cannot produce its next record
	// or the record's key or id.
	ErrSourceRead = errors.New("source read error")

	// ErrKeyTypeMismatch is returned when the two key fields have incompatible types.
	ErrKeyTypeMismatch = errors.New("key type mismatch")

	// ErrOutputWrite is returned when the sink rejects a difference record.
	ErrOutputWrite = errors.New("output write error")

	// ErrConfiguration is returned for malformed comparison settings.
	ErrConfiguration = errors.New("configuration error")
)

// CheckKeyTypes fails fast when the declared key types cannot be compared.
// KeyOther is accepted only against itself. An empty type, reported by
// datasets without records, matches anything.
func CheckKeyTypes(keyA, keyB KeyType) error {
	if keyA == "" || keyB == "" {
		return nil
	}
	if keyA != keyB {
		return fmt.Errorf("%w: source 1 key is %s, source 2 key is %s", ErrKeyTypeMismatch, keyA, keyB)
	}
	return nil
}
