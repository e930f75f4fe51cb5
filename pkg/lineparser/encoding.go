package lineparser

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DetectEncoding sniffs the encoding of a raw export file: BOMs first, then
// UTF-8 validity, then Shift_JIS as the legacy fallback LINE desktop
// exports still produce.
func DetectEncoding(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8-sig"
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return "utf-16-le"
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return "utf-16-be"
	}
	if utf8.Valid(raw) {
		return "utf-8"
	}
	if _, err := decodeShiftJIS(raw); err == nil {
		return "shift_jis"
	}
	return "utf-8"
}

// Decode converts raw bytes to a string using the detected encoding,
// falling back to lossy UTF-8 interpretation when decoding fails.
func Decode(raw []byte) (string, string) {
	enc := DetectEncoding(raw)
	switch enc {
	case "utf-8-sig":
		return string(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})), enc
	case "utf-16-le":
		if s, err := decodeUTF16(raw, unicode.LittleEndian); err == nil {
			return s, enc
		}
	case "utf-16-be":
		if s, err := decodeUTF16(raw, unicode.BigEndian); err == nil {
			return s, enc
		}
	case "shift_jis":
		if s, err := decodeShiftJIS(raw); err == nil {
			return s, enc
		}
	}
	return string(raw), "utf-8"
}

func decodeUTF16(raw []byte, e unicode.Endianness) (string, error) {
	dec := unicode.UTF16(e, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeShiftJIS(raw []byte) (string, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
