// Package privacy masks personal data in imported message text and flags
// noise records the analysis should never see. Masking runs locally before
// anything is persisted.
package privacy

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlRe   = regexp.MustCompile(`(?i)https?://[^\s　《》、。「」【】（）\[\]()]*`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+81[\s\-]?)?0\d{1,4}[\s\-]?\d{1,4}[\s\-]?\d{4}`)

	// LINE system records: stamps, media placeholders, call notices and
	// fully parenthesised lines.
	systemMsgRe = regexp.MustCompile(`^\[?(スタンプ|写真|動画|ファイル|ボイスメッセージ|GIF|連絡先|ノート|アルバム|画像|音声|位置情報|通話|不在着信|着信拒否|コレクション)|^\(.*\)$`)
)

// Mask replaces URLs, email addresses and Japanese phone numbers with
// fixed placeholders.
func Mask(text string) string {
	text = urlRe.ReplaceAllString(text, "[URL]")
	text = emailRe.ReplaceAllString(text, "[EMAIL]")
	text = phoneRe.ReplaceAllString(text, "[TEL]")
	return text
}

// IsNoise reports whether a message should be excluded from analysis:
// empty, shorter than minChars visible characters, a system message, or
// emoji/symbol-only content.
func IsNoise(text string, minChars int) bool {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return true
	}
	visible := 0
	for _, r := range stripped {
		if !unicode.IsSpace(r) {
			visible++
		}
	}
	if visible < minChars {
		return true
	}
	if systemMsgRe.MatchString(stripped) {
		return true
	}
	if emojiOnly(stripped) {
		return true
	}
	return false
}

// Preprocess masks the text and reports whether it is noise. Noise text is
// returned unmasked since it will not be stored.
func Preprocess(text string, minChars int) (string, bool) {
	if IsNoise(text, minChars) {
		return text, true
	}
	return Mask(text), false
}

// emojiOnly reports whether every rune is whitespace, an emoji/pictograph,
// or a common symbol rune.
func emojiOnly(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if isEmojiRune(r) {
			continue
		}
		return false
	}
	return true
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x10000 && r <= 0x10FFFF: // supplementary planes (emoji proper)
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // arrows, stars
		return true
	case r == 0x203C, r == 0x2049, r == 0x20E3, r == 0x2122, r == 0x2139:
		return true
	case r >= 0x2194 && r <= 0x21AA:
		return true
	case r >= 0x231A && r <= 0x23FA:
		return true
	case r == 0x3030, r == 0x303D, r == 0x3297, r == 0x3299:
		return true
	}
	return false
}
