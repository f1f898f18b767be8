package compression

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("auction-record-"), 64)
	small := []byte("x")

	tests := []struct {
		name string
		algo string
		data []byte
	}{
		{"none round trip", "none", compressible},
		{"lz4 round trip", "lz4", compressible},
		{"lz4 incompressible", "lz4", small},
		{"lz4 empty", "lz4", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ByName(tt.algo)
			if err != nil {
				t.Fatalf("ByName(%q) failed: %v", tt.algo, err)
			}

			encoded, err := Encode(c, tt.data)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(decoded), len(tt.data))
			}
		})
	}
}

func TestLZ4ActuallyCompresses(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 512)
	c := &LZ4Compressor{}

	encoded, err := Encode(c, data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(encoded) >= len(data) {
		t.Errorf("expected compressed envelope smaller than %d bytes, got %d", len(data), len(encoded))
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("zstd"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestDecodeTruncated(t *testing.T) {
	if _, err := Decode([]byte{1, 0}); err == nil {
		t.Error("expected error for truncated envelope")
	}
}
