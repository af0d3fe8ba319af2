package report

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/ppjoin/codec"
	"github.com/hupe1980/ppjoin/internal/conv"
	"github.com/hupe1980/ppjoin/internal/hash"
)

// Blob layout:
//
//	[magic "PPJR"][format uint8][compression uint8][nameLen uint8][codec name][size uint32][crc uint32][payload]
//
// size is the uncompressed payload length, crc the CRC32C of the stored payload.
const (
	magic         = "PPJR"
	formatVersion = 1
	fixedHeader   = len(magic) + 3
)

// ErrCorrupt is returned when a blob is not a valid report.
var ErrCorrupt = errors.New("report: corrupt blob")

// Encode serializes r with c and compresses it.
func Encode(r *Report, c codec.Codec, comp Compression) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	name := c.Name()
	if len(name) == 0 || len(name) > 255 {
		return nil, fmt.Errorf("report: invalid codec name %q", name)
	}

	payload, err := c.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("report: encode with %s: %w", name, err)
	}
	size, err := conv.IntToUint32(len(payload))
	if err != nil {
		return nil, fmt.Errorf("report: encoded report too large: %w", err)
	}

	used, body, err := compress(payload, comp)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, fixedHeader+len(name)+8+len(body))
	out = append(out, magic...)
	out = append(out, formatVersion, byte(used), byte(len(name)))
	out = append(out, name...)
	out = binary.LittleEndian.AppendUint32(out, size)
	out = binary.LittleEndian.AppendUint32(out, hash.CRC32C(body))
	out = append(out, body...)
	return out, nil
}

// Header describes a report blob without decoding it.
type Header struct {
	Codec       string
	Compression Compression
	Size        uint32
	Checksum    uint32
}

func parseHeader(data []byte) (Header, []byte, error) {
	if len(data) < fixedHeader || string(data[:len(magic)]) != magic {
		return Header{}, nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := data[len(magic)]; v != formatVersion {
		return Header{}, nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, v)
	}

	h := Header{Compression: Compression(data[len(magic)+1])}
	nameLen := int(data[len(magic)+2])
	rest := data[fixedHeader:]
	if len(rest) < nameLen+8 {
		return Header{}, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	h.Codec = string(rest[:nameLen])
	h.Size = binary.LittleEndian.Uint32(rest[nameLen:])
	h.Checksum = binary.LittleEndian.Uint32(rest[nameLen+4:])
	return h, rest[nameLen+8:], nil
}

// Decode parses a blob produced by Encode.
//
// The codec is looked up by the name stored in the blob, first among codecs
// and then among the built-in ones.
func Decode(data []byte, codecs ...codec.Codec) (*Report, error) {
	h, body, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	if hash.CRC32C(body) != h.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	c, ok := lookupCodec(h.Codec, codecs)
	if !ok {
		return nil, fmt.Errorf("report: unknown codec %q", h.Codec)
	}

	payload, err := decompress(body, h.Compression, h.Size)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := c.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("report: decode with %s: %w", h.Codec, err)
	}
	return &r, nil
}

func lookupCodec(name string, codecs []codec.Codec) (codec.Codec, bool) {
	for _, c := range codecs {
		if c != nil && c.Name() == name {
			return c, true
		}
	}
	return codec.ByName(name)
}
