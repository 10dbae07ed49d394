package merkle

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies the text codec used to turn a record supplied as a
// string into bytes before hashing. RawBytes trees hash string records
// as-is without it. In every tree it also fixes how digests are stored:
// as hex text encoded under this Encoding.
type Encoding uint8

const (
	EncodingUTF8 Encoding = iota + 1
	EncodingUTF16
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingUTF32
	EncodingASCII
	EncodingISO8859_1
	EncodingISO8859_2
	EncodingISO8859_7
	EncodingISO8859_9
	EncodingISO8859_15
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf_8"
	case EncodingUTF16:
		return "utf_16"
	case EncodingUTF16LE:
		return "utf_16_le"
	case EncodingUTF16BE:
		return "utf_16_be"
	case EncodingUTF32:
		return "utf_32"
	case EncodingASCII:
		return "ascii"
	case EncodingISO8859_1:
		return "iso_8859_1"
	case EncodingISO8859_2:
		return "iso_8859_2"
	case EncodingISO8859_7:
		return "iso_8859_7"
	case EncodingISO8859_9:
		return "iso_8859_9"
	case EncodingISO8859_15:
		return "iso_8859_15"
	default:
		return "unknown"
	}
}

// ParseEncoding maps a canonical name back to an Encoding, for JSON interop.
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "utf_8", "utf-8":
		return EncodingUTF8, nil
	case "utf_16", "utf-16":
		return EncodingUTF16, nil
	case "utf_16_le", "utf-16-le":
		return EncodingUTF16LE, nil
	case "utf_16_be", "utf-16-be":
		return EncodingUTF16BE, nil
	case "utf_32", "utf-32":
		return EncodingUTF32, nil
	case "ascii":
		return EncodingASCII, nil
	case "iso_8859_1", "iso-8859-1":
		return EncodingISO8859_1, nil
	case "iso_8859_2", "iso-8859-2":
		return EncodingISO8859_2, nil
	case "iso_8859_7", "iso-8859-7":
		return EncodingISO8859_7, nil
	case "iso_8859_9", "iso-8859-9":
		return EncodingISO8859_9, nil
	case "iso_8859_15", "iso-8859-15":
		return EncodingISO8859_15, nil
	default:
		return 0, fmt.Errorf("%w: unknown encoding %q", ErrInvalidType, name)
	}
}

// xtextCodec returns the golang.org/x/text codec backing this Encoding, or
// nil for the three encodings handled without that library (utf-8, ascii,
// utf-32).
func (e Encoding) xtextCodec() encoding.Encoding {
	switch e {
	case EncodingUTF16:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case EncodingISO8859_1:
		return charmap.ISO8859_1
	case EncodingISO8859_2:
		return charmap.ISO8859_2
	case EncodingISO8859_7:
		return charmap.ISO8859_7
	case EncodingISO8859_9:
		return charmap.ISO8859_9
	case EncodingISO8859_15:
		return charmap.ISO8859_15
	default:
		return nil
	}
}

// encode turns a text record into bytes under this Encoding, returning
// ErrUndecodable if the text cannot be represented.
func (e Encoding) encode(s string) ([]byte, error) {
	switch e {
	case EncodingUTF8:
		return []byte(s), nil
	case EncodingASCII:
		return encodeASCII(s)
	case EncodingUTF32:
		return encodeUTF32BE(s)
	default:
		codec := e.xtextCodec()
		if codec == nil {
			return nil, fmt.Errorf("%w: encoding %s", ErrInvalidType, e)
		}
		out, err := codec.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		return out, nil
	}
}

// decode is the reverse of encode: it turns encoded bytes (as produced by
// encode, or a node's stored digest) back into text. Used for the proof
// JSON form, where proof_path digests are emitted as text.
func (e Encoding) decode(b []byte) (string, error) {
	switch e {
	case EncodingUTF8:
		return string(b), nil
	case EncodingASCII:
		for _, c := range b {
			if c > 0x7F {
				return "", fmt.Errorf("%w: byte 0x%02x outside ASCII range", ErrUndecodable, c)
			}
		}
		return string(b), nil
	case EncodingUTF32:
		return decodeUTF32BE(b)
	default:
		codec := e.xtextCodec()
		if codec == nil {
			return "", fmt.Errorf("%w: encoding %s", ErrInvalidType, e)
		}
		out, err := codec.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		return string(out), nil
	}
}

func decodeUTF32BE(b []byte) (string, error) {
	if len(b)%4 != 0 {
		return "", fmt.Errorf("%w: utf-32 byte length not a multiple of 4", ErrUndecodable)
	}
	runes := make([]rune, 0, len(b)/4)
	for i := 0; i < len(b); i += 4 {
		r := rune(b[i])<<24 | rune(b[i+1])<<16 | rune(b[i+2])<<8 | rune(b[i+3])
		runes = append(runes, r)
	}
	return string(runes), nil
}

// encodeASCII rejects any rune outside the 7-bit range; golang.org/x/text
// has no dedicated ASCII codec.
func encodeASCII(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0x7F {
			return nil, fmt.Errorf("%w: rune %q outside ASCII range", ErrUndecodable, r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

// encodeUTF32BE encodes each rune as a fixed 4-byte big-endian code point;
// golang.org/x/text does not ship a UTF-32 codec.
func encodeUTF32BE(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*4)
	for _, r := range s {
		if r == utf8.RuneError {
			return nil, fmt.Errorf("%w: invalid rune in input", ErrUndecodable)
		}
		out = append(out, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
	}
	return out, nil
}
