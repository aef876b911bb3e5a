package core

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decoderFor returns the decoder producing UTF-8 from enc. The UTF-8 decoders
// replace invalid sequences with U+FFFD instead of failing the read.
func decoderFor(enc Encoding) (*encoding.Decoder, error) {
	switch enc {
	case EncodingUTF8:
		return unicode.UTF8.NewDecoder(), nil
	case EncodingUTF8BOM:
		return unicode.UTF8BOM.NewDecoder(), nil
	case EncodingISO8859_8:
		return charmap.ISO8859_8.NewDecoder(), nil
	case EncodingWindows1255:
		return charmap.Windows1255.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
}

// decodeReader wraps r so reads yield UTF-8 text.
func decodeReader(r io.Reader, enc Encoding) (io.Reader, error) {
	dec, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}
	return dec.Reader(r), nil
}

// singleByte reports whether enc is a legacy 8-bit code page.
func singleByte(enc Encoding) bool {
	return enc == EncodingISO8859_8 || enc == EncodingWindows1255
}
