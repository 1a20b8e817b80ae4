// Package compress provides the pluggable block-compression codecs a depot
// entry's payload may be framed with. Each Codec wraps a streaming
// third-party compressor behind a small Encoder/Decoder pair so the engine
// never branches on which algorithm produced a given stream; DetectCodec
// recovers that choice at extract time by sniffing the frame's own magic
// bytes, so no extra field is needed on the wire.
package compress
