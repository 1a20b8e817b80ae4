// Package section defines the three wire structs that make up a depot file —
// Header, EntryInfo, and TOC — together with their encode/decode pairs.
// Each mirrors the big-endian encoding described by the depot file format.
// Header and EntryInfo have a Bytes() method that serializes to a byte slice
// and a free function that parses one back from an io.Reader; the
// variable-length TOC is written with TOC.WriteTo and read with ReadTOC.
package section
