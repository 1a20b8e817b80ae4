package compress

import (
	"io"

	"github.com/kordalabs/depot/format"
	"github.com/pierrec/lz4/v4"
)

// lz4Magic is the fixed 4-byte LZ4 frame magic number, stored little-endian.
var lz4Magic = []byte{0x04, 0x22, 0x4D, 0x18}

// lz4Codec favors the fastest decompression of the three, at the cost of
// ratio.
type lz4Codec struct{}

var _ Codec = lz4Codec{}

func (lz4Codec) Kind() format.CompressionKind { return format.CompressionLZ4 }
func (lz4Codec) Magic() []byte                { return lz4Magic }

func (lz4Codec) NewEncoder(w io.Writer, opts EncodeOptions) (Encoder, error) {
	zw := lz4.NewWriter(w)

	lz4Opts := []lz4.Option{lz4.BlockChecksumOption(opts.Checksum)}
	if opts.Level > 0 {
		lz4Opts = append(lz4Opts, lz4.CompressionLevelOption(lz4.CompressionLevel(opts.Level)))
	}

	if opts.WorkerThreads > 1 {
		lz4Opts = append(lz4Opts, lz4.ConcurrencyOption(opts.WorkerThreads))
	}

	if err := zw.Apply(lz4Opts...); err != nil {
		return nil, err
	}

	return zw, nil
}

func (lz4Codec) NewDecoder(r io.Reader) (Decoder, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
