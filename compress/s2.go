package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/kordalabs/depot/format"
)

// s2Magic is the fixed stream identifier chunk S2 prefixes every stream
// with: chunk type 0xff, a 3-byte little-endian length of 6, then the
// 6-byte magic body "S2sTwO".
var s2Magic = []byte{0xff, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}

// s2Codec favors encode/decode speed over ratio.
type s2Codec struct{}

var _ Codec = s2Codec{}

func (s2Codec) Kind() format.CompressionKind { return format.CompressionS2 }
func (s2Codec) Magic() []byte                { return s2Magic }

func (s2Codec) NewEncoder(w io.Writer, opts EncodeOptions) (Encoder, error) {
	s2Opts := []s2.WriterOption{s2.WriterConcurrency(max(opts.WorkerThreads, 1))}

	if opts.Checksum {
		// S2 always writes a per-block checksum; BetterCompression trades
		// speed for a higher effective ratio, the natural knob to expose
		// when the caller opts into extra integrity overhead.
		s2Opts = append(s2Opts, s2.WriterBetterCompression())
	}

	return s2.NewWriter(w, s2Opts...), nil
}

func (s2Codec) NewDecoder(r io.Reader) (Decoder, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
