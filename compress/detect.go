package compress

import (
	"bufio"
	"bytes"

	"github.com/kordalabs/depot/errs"
	"github.com/kordalabs/depot/format"
)

// maxMagicLen is the longest magic prefix among the registered codecs.
const maxMagicLen = 10

// DetectCodec peeks at the start of a compressed stream and identifies
// which registered Codec produced it, without consuming any bytes from r.
func DetectCodec(r *bufio.Reader) (format.CompressionKind, error) {
	peeked, err := r.Peek(maxMagicLen)
	if err != nil && len(peeked) == 0 {
		return format.CompressionNone, err
	}

	for _, c := range allCodecs() {
		magic := c.Magic()
		if len(peeked) >= len(magic) && bytes.Equal(peeked[:len(magic)], magic) {
			return c.Kind(), nil
		}
	}

	return format.CompressionNone, errs.ErrUnknownCompressor
}
