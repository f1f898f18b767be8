package compression

import (
	"encoding/binary"
	"fmt"
)

// Compressor compresses and decompresses record payloads before they
// are written to the keyValueDb.
type Compressor interface {
	// Name returns the name of the compressor.
	Name() string

	// Compress compresses data.
	Compress(data []byte, level int) ([]byte, error)

	// Decompress decompresses data. The caller supplies the original
	// uncompressed size recorded in the envelope.
	Decompress(data []byte, uncompressedSize int) ([]byte, error)

	// MaxCompressedSize returns the maximum compressed size for a given uncompressed size.
	MaxCompressedSize(uncompressedSize int) int
}

// Algorithm identifiers recorded in the envelope header.
const (
	algoNone byte = 0
	algoLZ4  byte = 1
)

const headerSize = 5 // 1-byte algo + 4-byte big-endian uncompressed size

// ByName returns the compressor for a configured name.
func ByName(name string) (Compressor, error) {
	switch name {
	case "", "none":
		return &NoCompressor{}, nil
	case "lz4":
		return &LZ4Compressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compression algorithm %q", name)
	}
}

func algoOf(c Compressor) byte {
	if c.Name() == "lz4" {
		return algoLZ4
	}
	return algoNone
}

// Encode compresses the payload and prepends the envelope header so
// the value is self-describing on disk.
func Encode(c Compressor, data []byte) ([]byte, error) {
	compressed, err := c.Compress(data, 0)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize+len(compressed))
	out[0] = algoOf(c)
	binary.BigEndian.PutUint32(out[1:headerSize], uint32(len(data)))
	copy(out[headerSize:], compressed)
	return out, nil
}

// Decode reads the envelope header and returns the original payload.
func Decode(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("value too short for compression envelope: %d bytes", len(data))
	}

	size := int(binary.BigEndian.Uint32(data[1:headerSize]))
	payload := data[headerSize:]

	switch data[0] {
	case algoNone:
		return (&NoCompressor{}).Decompress(payload, size)
	case algoLZ4:
		return (&LZ4Compressor{}).Decompress(payload, size)
	default:
		return nil, fmt.Errorf("unknown compression algorithm byte %d", data[0])
	}
}
