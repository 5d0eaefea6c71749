package codec

import (
	"bytes"
	"testing"
)

func TestDetectAndDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		wantEnc  Encoding
		wantUTF8 []byte
	}{
		{
			name:     "empty",
			raw:      []byte{},
			wantEnc:  UTF8,
			wantUTF8: []byte{},
		},
		{
			name:     "plain ASCII",
			raw:      []byte("hello world"),
			wantEnc:  UTF8,
			wantUTF8: []byte("hello world"),
		},
		{
			name:     "multibyte UTF-8 without BOM",
			raw:      []byte("héllo, 世界"),
			wantEnc:  UTF8,
			wantUTF8: []byte("héllo, 世界"),
		},
		{
			name:     "UTF-8 BOM stripped",
			raw:      []byte{0xEF, 0xBB, 0xBF, 'h', 'e', 'l', 'l', 'o'},
			wantEnc:  UTF8,
			wantUTF8: []byte("hello"),
		},
		{
			name:     "UTF-16 LE",
			raw:      []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00},
			wantEnc:  UTF16LE,
			wantUTF8: []byte("hi"),
		},
		{
			name:     "UTF-16 BE",
			raw:      []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'},
			wantEnc:  UTF16BE,
			wantUTF8: []byte("hi"),
		},
		{
			name:     "UTF-16 LE surrogate pair",
			raw:      []byte{0xFF, 0xFE, 0x3D, 0xD8, 0x00, 0xDE}, // U+1F600
			wantEnc:  UTF16LE,
			wantUTF8: []byte("\U0001F600"),
		},
		{
			name:     "UTF-16 LE odd trailing byte becomes replacement",
			raw:      []byte{0xFF, 0xFE, 'h', 0x00, 0x41},
			wantEnc:  UTF16LE,
			wantUTF8: []byte("h�"),
		},
		{
			name:     "UTF-16 LE unpaired surrogate becomes replacement",
			raw:      []byte{0xFF, 0xFE, 0x3D, 0xD8, 'x', 0x00},
			wantEnc:  UTF16LE,
			wantUTF8: []byte("�x"),
		},
		{
			name:     "invalid UTF-8 lead bytes fall back to ANSI",
			raw:      []byte{0x80, 0x81, 0x82},
			wantEnc:  ANSI,
			wantUTF8: []byte{0x80, 0x81, 0x82},
		},
		{
			name:     "ANSI passthrough keeps every byte",
			raw:      []byte{'c', 'a', 'f', 0xE9}, // "café" in Latin-1
			wantEnc:  ANSI,
			wantUTF8: []byte{'c', 'a', 'f', 0xE9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, utf8Content := DetectAndDecode(tt.raw)
			if enc != tt.wantEnc {
				t.Errorf("DetectAndDecode() encoding = %v, want %v", enc, tt.wantEnc)
			}
			if !bytes.Equal(utf8Content, tt.wantUTF8) {
				t.Errorf("DetectAndDecode() content = %q, want %q", utf8Content, tt.wantUTF8)
			}
		})
	}
}

func TestDetectAndDecodeCopiesInput(t *testing.T) {
	raw := []byte("mutate me")
	_, decoded := DetectAndDecode(raw)
	decoded[0] = 'X'
	if raw[0] != 'm' {
		t.Error("DetectAndDecode() aliased the input slice")
	}
}

func TestEncodeForDisk(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		in   []byte
		want []byte
	}{
		{
			name: "UTF-8 passthrough",
			enc:  UTF8,
			in:   []byte("hello"),
			want: []byte("hello"),
		},
		{
			name: "ANSI passthrough",
			enc:  ANSI,
			in:   []byte{0xE9, 0xFF},
			want: []byte{0xE9, 0xFF},
		},
		{
			name: "UTF-16 LE prepends BOM",
			enc:  UTF16LE,
			in:   []byte("hi"),
			want: []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00},
		},
		{
			name: "UTF-16 BE prepends BOM",
			enc:  UTF16BE,
			in:   []byte("hi"),
			want: []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'},
		},
		{
			name: "UTF-16 LE empty document is just the BOM",
			enc:  UTF16LE,
			in:   []byte{},
			want: []byte{0xFF, 0xFE},
		},
		{
			name: "UTF-16 LE surrogate pair round-trip",
			enc:  UTF16LE,
			in:   []byte("\U0001F600"),
			want: []byte{0xFF, 0xFE, 0x3D, 0xD8, 0x00, 0xDE},
		},
		{
			name: "malformed UTF-8 is lossy-decoded, not dropped",
			enc:  UTF16LE,
			in:   []byte{'a', 0x80},
			want: []byte{0xFF, 0xFE, 'a', 0x00, 0xFD, 0xFF}, // a, U+FFFD
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeForDisk(tt.enc, tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeForDisk() = % X, want % X", got, tt.want)
			}
		})
	}
}

// Detect-then-encode must reproduce the original bytes whenever no lossy
// decoding occurred: always for UTF-8 and ANSI, and for the UTF-16
// variants when the payload contains no malformed 16-bit sequences.
func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("plain ascii\r\nsecond line"),
		[]byte("unicode: 世界 — ellipsis…"),
		{0x80, 0x90, 0xA0, 0xFF},                          // ANSI
		{0xFF, 0xFE, 'h', 0x00, 'i', 0x00},                // UTF-16 LE
		{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'},                // UTF-16 BE
		{0xFF, 0xFE, 0x3D, 0xD8, 0x00, 0xDE},              // UTF-16 LE astral
		{0xFF, 0xFE},                                      // UTF-16 LE empty
	}
	for _, raw := range inputs {
		enc, decoded := DetectAndDecode(raw)
		got := EncodeForDisk(enc, decoded)
		want := raw
		if enc == UTF8 && bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
			want = raw[3:] // BOM is stripped and not rewritten
		}
		if !bytes.Equal(got, want) {
			t.Errorf("round trip of % X: got % X, want % X", raw, got, want)
		}
	}
}

func TestEncodingLabels(t *testing.T) {
	labels := map[Encoding]string{
		UTF8:    "UTF-8",
		UTF16LE: "UTF-16 LE",
		UTF16BE: "UTF-16 BE",
		ANSI:    "ANSI",
	}
	for enc, want := range labels {
		if got := enc.String(); got != want {
			t.Errorf("Encoding(%d).String() = %q, want %q", enc, got, want)
		}
		if back := ParseEncoding(want); back != enc {
			t.Errorf("ParseEncoding(%q) = %v, want %v", want, back, enc)
		}
	}
	if got := ParseEncoding("EBCDIC"); got != UTF8 {
		t.Errorf("ParseEncoding(unknown) = %v, want UTF8", got)
	}
}

func TestDecodeLatin1(t *testing.T) {
	got := DecodeLatin1([]byte{'c', 'a', 'f', 0xE9})
	if string(got) != "café" {
		t.Errorf("DecodeLatin1() = %q, want %q", got, "café")
	}
}
