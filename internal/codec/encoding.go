package codec

import (
	"bytes"
	"strings"
	"unicode/utf8"

	charmaps "github.com/gdamore/encoding"
	"golang.org/x/text/encoding/unicode"
)

// LargeFileThreshold is the byte count above which a document is opened
// in large-file mode (no word wrap, plain-text lexing, metadata-only
// session checkpoints).
const LargeFileThreshold = 50 * 1024 * 1024 // 50 MiB

// Encoding identifies the on-disk character encoding of a document.
// The in-memory representation is always UTF-8 regardless of this value.
type Encoding uint8

const (
	// UTF8 is UTF-8, with or without BOM.
	UTF8 Encoding = iota
	// UTF16LE is UTF-16 Little-Endian with BOM.
	UTF16LE
	// UTF16BE is UTF-16 Big-Endian with BOM.
	UTF16BE
	// ANSI is the single-byte fallback. Bytes are kept verbatim and the
	// renderer interprets them as Latin-1.
	ANSI
)

// String returns the status-bar label for the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF16LE:
		return "UTF-16 LE"
	case UTF16BE:
		return "UTF-16 BE"
	case ANSI:
		return "ANSI"
	default:
		return "UTF-8"
	}
}

// ParseEncoding maps a status-bar label back to an Encoding.
// Unrecognized labels fall back to UTF8 so that stale session snapshots
// never fail a restore.
func ParseEncoding(label string) Encoding {
	switch label {
	case "UTF-16 LE":
		return UTF16LE
	case "UTF-16 BE":
		return UTF16BE
	case "ANSI":
		return ANSI
	default:
		return UTF8
	}
}

// BOM markers, checked in DetectAndDecode order.
var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
)

// DetectAndDecode determines the encoding of raw file bytes and returns
// the UTF-8 content to load into an editor view.
//
// Detection order, first match wins:
//  1. FF FE prefix: UTF-16 LE; remaining bytes decoded as little-endian
//     code units, malformed sequences mapped to U+FFFD.
//  2. FE FF prefix: UTF-16 BE, same but big-endian.
//  3. EF BB BF prefix: UTF-8; the marker is stripped.
//  4. Valid UTF-8: returned unchanged.
//  5. Otherwise ANSI: bytes pass through unchanged.
//
// Every input produces a result; there is no error case.
func DetectAndDecode(raw []byte) (Encoding, []byte) {
	if bytes.HasPrefix(raw, bomUTF16LE) {
		return UTF16LE, decodeUTF16(raw[2:], unicode.LittleEndian)
	}
	if bytes.HasPrefix(raw, bomUTF16BE) {
		return UTF16BE, decodeUTF16(raw[2:], unicode.BigEndian)
	}
	if bytes.HasPrefix(raw, bomUTF8) {
		out := make([]byte, len(raw)-3)
		copy(out, raw[3:])
		return UTF8, out
	}
	if utf8.Valid(raw) {
		out := make([]byte, len(raw))
		copy(out, raw)
		return UTF8, out
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return ANSI, out
}

// decodeUTF16 converts UTF-16 payload bytes (without BOM) to UTF-8.
// Unpaired surrogates and a trailing odd byte become U+FFFD.
func decodeUTF16(payload []byte, order unicode.Endianness) []byte {
	dec := unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(payload)
	if err != nil {
		// The UTF-16 decoder substitutes U+FFFD rather than failing;
		// err is only possible on internal transform faults.
		return []byte(strings.ToValidUTF8(string(out), "�"))
	}
	return out
}

// EncodeForDisk transforms UTF-8 content into the byte sequence to write
// for the given encoding. UTF8 and ANSI pass through unchanged. The
// UTF-16 variants prepend the 2-byte BOM and re-encode every scalar
// value as one or two 16-bit code units in the requested byte order;
// malformed UTF-8 input is lossy-decoded first so encoding cannot fail.
func EncodeForDisk(enc Encoding, utf8Content []byte) []byte {
	switch enc {
	case UTF16LE:
		return encodeUTF16(utf8Content, unicode.LittleEndian)
	case UTF16BE:
		return encodeUTF16(utf8Content, unicode.BigEndian)
	default:
		out := make([]byte, len(utf8Content))
		copy(out, utf8Content)
		return out
	}
}

func encodeUTF16(utf8Content []byte, order unicode.Endianness) []byte {
	clean := strings.ToValidUTF8(string(utf8Content), "�")
	enc := unicode.UTF16(order, unicode.UseBOM).NewEncoder()
	out, err := enc.Bytes([]byte(clean))
	if err != nil {
		// Unreachable for sanitized input: UTF-16 covers every scalar value.
		return bomFor(order)
	}
	if len(out) == 0 {
		// The transform chain emits the BOM lazily; an empty document
		// still needs its marker on disk.
		return bomFor(order)
	}
	return out
}

func bomFor(order unicode.Endianness) []byte {
	if order == unicode.BigEndian {
		return append([]byte(nil), bomUTF16BE...)
	}
	return append([]byte(nil), bomUTF16LE...)
}

// DecodeLatin1 maps ANSI (Latin-1) bytes to UTF-8 for display. Document
// offsets are unaffected; the renderer calls this per line, purely for
// drawing.
func DecodeLatin1(raw []byte) []byte {
	out, err := charmaps.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Latin-1 decoding accepts every byte; keep the input on the
		// unreachable fault path.
		return raw
	}
	return out
}
