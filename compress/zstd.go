package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/kordalabs/depot/format"
)

// zstdMagic is the fixed 4-byte frame magic number from RFC 8878, stored
// little-endian on the wire.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// zstdCodec is the default codec: good ratio, concurrent encoding, and an
// optional per-frame checksum.
type zstdCodec struct{}

var _ Codec = zstdCodec{}

func (zstdCodec) Kind() format.CompressionKind { return format.CompressionZstd }
func (zstdCodec) Magic() []byte                { return zstdMagic }

func (zstdCodec) NewEncoder(w io.Writer, opts EncodeOptions) (Encoder, error) {
	zstdOpts := []zstd.EOption{zstd.WithEncoderCRC(opts.Checksum)}

	if opts.Level > 0 {
		zstdOpts = append(zstdOpts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(opts.Level)))
	}

	zstdOpts = append(zstdOpts, zstd.WithEncoderConcurrency(max(opts.WorkerThreads, 1)))

	enc, err := zstd.NewWriter(w, zstdOpts...)
	if err != nil {
		return nil, err
	}

	return enc, nil
}

func (zstdCodec) NewDecoder(r io.Reader) (Decoder, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &zstdDecoderCloser{dec}, nil
}

// zstdDecoderCloser adapts *zstd.Decoder's non-erroring Close() to the
// io.ReadCloser signature Decoder requires.
type zstdDecoderCloser struct {
	*zstd.Decoder
}

func (d *zstdDecoderCloser) Close() error {
	d.Decoder.Close()
	return nil
}
