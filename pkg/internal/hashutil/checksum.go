// Package hashutil computes the content digests reported for artifacts
package hashutil

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
)

// Prefix names the algorithm in every formatted digest
const Prefix = "sha256:"

// Digest accumulates bytes written to it
type Digest struct {
	h hash.Hash
}

// New returns an empty digest
func New() *Digest {
	return &Digest{h: sha256.New()}
}

// Write adds p to the digest
func (d *Digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// String formats the digest as "sha256:<hex>"
func (d *Digest) String() string {
	return fmt.Sprintf("%s%x", Prefix, d.h.Sum(nil))
}

// File returns the formatted digest of the file at path
func File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	d := New()
	if _, err := io.Copy(d, file); err != nil {
		return "", err
	}
	return d.String(), nil
}
