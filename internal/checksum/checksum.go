package checksum

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// SnapshotHash is the hex SHA256 of the page markup as fetched.
func (g *Generator) SnapshotHash(markup string) string {
	hash := sha256.Sum256([]byte(markup))
	return fmt.Sprintf("%x", hash)
}

// VerifySnapshot decodes a base64 snapshot and checks it against a hash
// produced by SnapshotHash.
func (g *Generator) VerifySnapshot(expectedHash, encoded string) (bool, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, fmt.Errorf("decode snapshot: %w", err)
	}
	return g.SnapshotHash(string(decoded)) == expectedHash, nil
}
