// Package image turns a program file on disk into the ordered word
// sequence that seeds array 0. It has no opinion about array-space
// mechanics or the instruction set; it only performs the big-endian
// byte-to-word conversion the specification's external interface calls
// for.
package image

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Load reads path and decodes it as a sequence of 32-bit big-endian words.
// The file length must be a multiple of 4; any other length is reported as
// an implementation error, not a program error, since it is detected
// before a VM is ever constructed.
func Load(path string) ([]uint32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("program image %s has length %d, not a multiple of 4", path, len(raw))
	}

	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(raw[i*4 : i*4+4])
	}
	return words, nil
}
