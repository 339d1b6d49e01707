// Package stamp records a digest of the generator inputs next to the build
// output, letting a build step skip regeneration when nothing changed.
package stamp

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
)

const scheme = "blake2b-256:"

// Digest hashes the header bytes and every option that shapes the output.
// Parts are length-prefixed so ("ab","c") and ("a","bc") differ.
func Digest(header []byte, parts ...string) string {
	h, _ := blake2b.New256(nil)
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(header)))
	h.Write(n[:])
	h.Write(header)
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return scheme + hex.EncodeToString(h.Sum(nil))
}

// Fresh reports whether the stamp at path records digest and the output it
// guards still exists.
func Fresh(path, digest, output string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read stamp: %w", err)
	}
	if strings.TrimSpace(string(data)) != digest {
		return false, nil
	}
	if _, err := os.Stat(output); err != nil {
		return false, nil
	}
	return true, nil
}

func Write(path, digest string) error {
	return common.WriteFileAtomic(path, []byte(digest+"\n"))
}
