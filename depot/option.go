package depot

import (
	"github.com/kordalabs/depot/format"
	"github.com/kordalabs/depot/internal/options"
)

// config holds the tunables a Handle is constructed with.
type config struct {
	compressionLevel int32
	workerThreads    int
	frameSize        int
	compressor       format.CompressionKind
}

func defaultConfig() *config {
	return &config{
		compressionLevel: 0,
		workerThreads:    1,
		frameSize:        8192,
		compressor:       format.CompressionZstd,
	}
}

// Option represents a functional option for configuring a Handle at Create time.
type Option = options.Option[*config]

// WithCompressionLevel sets the codec-specific compression level recorded in
// the TOC and applied to every entry added afterward.
func WithCompressionLevel(level int32) Option {
	return options.NoError(func(c *config) {
		c.compressionLevel = level
	})
}

// WithWorkerThreads requests concurrent frame compression where the chosen
// codec supports it.
func WithWorkerThreads(threads int) Option {
	return options.NoError(func(c *config) {
		if threads > 0 {
			c.workerThreads = threads
		}
	})
}

// WithFrameSize sets the scratch buffer size used while streaming an entry's
// source bytes into the compressor.
func WithFrameSize(size int) Option {
	return options.NoError(func(c *config) {
		if size > 0 {
			c.frameSize = size
		}
	})
}

// WithCompressor selects the codec new entries are compressed with. It has
// no effect on entries already in the depot; ExtractStream recovers each
// entry's actual codec by sniffing its frame magic, so a single depot may
// mix codecs across entries added under different options.
func WithCompressor(kind format.CompressionKind) Option {
	return options.NoError(func(c *config) {
		c.compressor = kind
	})
}
