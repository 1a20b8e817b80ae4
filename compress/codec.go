package compress

import (
	"io"

	"github.com/kordalabs/depot/errs"
	"github.com/kordalabs/depot/format"
)

// Encoder streams uncompressed bytes written to it out as compressed frames.
// Close flushes any buffered frame and must be called before the underlying
// writer is considered complete.
type Encoder interface {
	io.WriteCloser
}

// Decoder streams compressed frames read from its source back out as the
// original uncompressed bytes.
type Decoder interface {
	io.ReadCloser
}

// EncodeOptions configures how a Codec constructs an Encoder.
type EncodeOptions struct {
	// Level is the codec-specific compression level. Its meaning and valid
	// range vary per codec; 0 means "use the codec's default".
	Level int

	// WorkerThreads requests concurrent frame compression where the codec
	// supports it. 0 or 1 means single-threaded.
	WorkerThreads int

	// Checksum requests a per-frame content checksum where the codec
	// supports it.
	Checksum bool
}

// Codec is a block-compression algorithm the engine can frame an entry's
// payload with.
type Codec interface {
	// NewEncoder returns a streaming Encoder writing compressed frames to w.
	NewEncoder(w io.Writer, opts EncodeOptions) (Encoder, error)

	// NewDecoder returns a streaming Decoder reading compressed frames from r.
	NewDecoder(r io.Reader) (Decoder, error)

	// Kind identifies this codec; DetectCodec reports it for a recognized
	// stream. It is never written to the wire format itself.
	Kind() format.CompressionKind

	// Magic returns the fixed byte sequence this codec's stream format
	// begins every frame with, used by DetectCodec to recognize a stream
	// without being told which codec produced it.
	Magic() []byte
}

var registry = map[format.CompressionKind]Codec{
	format.CompressionZstd: zstdCodec{},
	format.CompressionS2:   s2Codec{},
	format.CompressionLZ4:  lz4Codec{},
}

// ByKind returns the built-in Codec for kind.
func ByKind(kind format.CompressionKind) (Codec, error) {
	c, ok := registry[kind]
	if !ok {
		return nil, errs.ErrUnknownCompressor
	}

	return c, nil
}

// allCodecs returns the registered codecs ordered so that the codec with the
// longest magic prefix is checked first, avoiding a shorter magic's prefix
// shadowing a longer one.
func allCodecs() []Codec {
	return []Codec{
		registry[format.CompressionS2],
		registry[format.CompressionZstd],
		registry[format.CompressionLZ4],
	}
}
