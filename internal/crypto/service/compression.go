package service

import (
	"github.com/klauspost/compress/zstd"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	"github.com/Nickbot606/clenv/internal/errors"
)

// maxDecodedSize caps the memory a single decompression may allocate. It sits above
// MaxPayloadSize so every payload Encrypt accepts also decodes.
const maxDecodedSize = cryptoDomain.MaxPayloadSize + 1<<20

// ZstdCompressor implements Compressor with Zstandard frames.
//
// The encoder and decoder are created once and used through their stateless EncodeAll and
// DecodeAll entry points, which are safe for concurrent use. Close must be called to release
// the decoder.
type ZstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewZstdCompressor creates a compressor with single-goroutine encoder and decoder.
func NewZstdCompressor() (*ZstdCompressor, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zstd encoder")
	}

	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecodedSize),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, errors.Wrap(err, "failed to create zstd decoder")
	}

	return &ZstdCompressor{encoder: encoder, decoder: decoder}, nil
}

// Compress returns src as a single zstd frame.
func (c *ZstdCompressor) Compress(src []byte) []byte {
	return c.encoder.EncodeAll(src, nil)
}

// Decompress reverses Compress. Input that is not a valid frame yields ErrDecompressionFailed.
func (c *ZstdCompressor) Decompress(src []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrDecompressionFailed, err.Error())
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// Close releases the encoder and decoder.
func (c *ZstdCompressor) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}
