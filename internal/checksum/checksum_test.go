package checksum

import (
	"encoding/base64"
	"testing"
)

func TestSnapshotHash(t *testing.T) {
	gen := NewGenerator()

	markup := `<html><body><p class="Judg-1">1 The appellant</p></body></html>`

	hash1 := gen.SnapshotHash(markup)
	hash2 := gen.SnapshotHash(markup)

	if hash1 != hash2 {
		t.Errorf("Hash not deterministic: %s != %s", hash1, hash2)
	}

	if len(hash1) != 64 {
		t.Errorf("Hash wrong length: %d, expected 64", len(hash1))
	}

	hash3 := gen.SnapshotHash(markup + " ")
	if hash1 == hash3 {
		t.Errorf("Hash should change when markup changes")
	}
}

func TestVerifySnapshot(t *testing.T) {
	gen := NewGenerator()

	markup := "<p>Café – “quoted” 判决</p>"
	hash := gen.SnapshotHash(markup)
	encoded := base64.StdEncoding.EncodeToString([]byte(markup))

	ok, err := gen.VerifySnapshot(hash, encoded)
	if err != nil {
		t.Fatalf("VerifySnapshot error: %v", err)
	}
	if !ok {
		t.Errorf("VerifySnapshot failed for matching snapshot")
	}

	other := base64.StdEncoding.EncodeToString([]byte(markup + "!"))
	ok, err = gen.VerifySnapshot(hash, other)
	if err != nil {
		t.Fatalf("VerifySnapshot error: %v", err)
	}
	if ok {
		t.Errorf("VerifySnapshot should fail for different markup")
	}

	if _, err := gen.VerifySnapshot(hash, "not base64!"); err == nil {
		t.Errorf("VerifySnapshot should reject invalid base64")
	}
}
