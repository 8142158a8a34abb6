package persistence

import (
	"fmt"
	"meetsync/internal/persistence/interfaces"

	"github.com/klauspost/compress/zstd"
)

// maxSnapshotSize caps the decoded size of a snapshot file.
const maxSnapshotSize = 512 << 20

// SnapshotCompressor zstd-encodes snapshot files. Snapshots are written in
// the background, so it trades encode speed for a smaller file.
type SnapshotCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (c *SnapshotCompressor) Compress(val []byte) ([]byte, error) {
	return c.encoder.EncodeAll(val, make([]byte, 0, len(val)/4)), nil
}

func (c *SnapshotCompressor) Decompress(val []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}
	return out, nil
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxSnapshotSize),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &SnapshotCompressor{encoder: encoder, decoder: decoder}, nil
}
