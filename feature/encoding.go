package feature

import (
	"encoding/binary"
	"fmt"
	"math"
)

// vectorWordSize is the on-disk width of one vector component.
const vectorWordSize = 4

// blobComponents validates a BLOB length and returns its component count.
func blobComponents(b []byte) (int, error) {
	if len(b)%vectorWordSize != 0 {
		return 0, fmt.Errorf("feature: invalid vector blob length %d (not a multiple of %d)",
			len(b), vectorWordSize)
	}
	return len(b) / vectorWordSize, nil
}

// EncodeVector encodes a float32 vector into the BLOB representation stored
// in SQLite: a little-endian sequence of IEEE 754 float32 values without a
// length prefix; the length is derived from the BLOB size on decode. An
// empty vector encodes to nil.
func EncodeVector(vec []float32) ([]byte, error) {
	if len(vec) == 0 {
		return nil, nil
	}
	b := make([]byte, 0, len(vec)*vectorWordSize)
	for _, v := range vec {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b, nil
}

// DecodeVector decodes a BLOB produced by EncodeVector.
func DecodeVector(b []byte) ([]float32, error) {
	n, err := blobComponents(b)
	if err != nil || n == 0 {
		return nil, err
	}
	vec := make([]float32, n)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*vectorWordSize:]))
	}
	return vec, nil
}
