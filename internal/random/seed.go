package random

import (
	crand "crypto/rand"
	"encoding/binary"

	"github.com/louisbranch/gitdungeon/internal/platform/errors"
)

// NewSeed generates a high-entropy root seed using crypto/rand.
//
// Runs started without an explicit seed use this once at startup; everything
// downstream stays reproducible from the returned value.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(errors.CodeSeedUnavailable, "read random seed", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
