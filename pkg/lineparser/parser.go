// Package lineparser parses LINE talk-history exports (.txt). The format
// is undocumented and has drifted across app versions, so the parser
// accepts every known line shape: date separator lines, tab- or
// space-delimited message lines with or without an inline date, and
// continuation lines belonging to the previous message.
package lineparser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4}/\d{1,2}/\d{1,2})(\(.+\))?$`),
	regexp.MustCompile(`^(\d{4}年\d{1,2}月\d{1,2}日)(\(.+\))?$`),
}

var (
	// time \t speaker \t body
	msgTabRe = regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)\t(.+?)\t(.*)$`)
	// time  speaker  body (two or more spaces between speaker and body)
	msgSpaceRe = regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)\s+(.+?)\s{2,}(.*)$`)
	// date \t time \t speaker \t body
	msgFullTabRe = regexp.MustCompile(`^(\d{4}[/年]\d{1,2}[/月]\d{1,2}[日]?)\t(\d{1,2}:\d{2}(?::\d{2})?)\t(.+?)\t(.*)$`)
	// date  time  speaker  body
	msgFullRe = regexp.MustCompile(`^(\d{4}[/年]\d{1,2}[/月]\d{1,2}[日]?)\s+(\d{1,2}:\d{2}(?::\d{2})?)\s+(.+?)\s{2,}(.*)$`)

	dateSlashRe = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})`)
	dateKanjiRe = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日`)

	savedAtRe     = regexp.MustCompile(`^保存日時[：:]`)
	talkHistoryRe = regexp.MustCompile(`^.+のトーク履歴$`)
)

// ParsedMessage is one raw message as found in the export. Timestamp is the
// zero time when the surrounding export carried no parseable date.
type ParsedMessage struct {
	Timestamp time.Time
	Speaker   string
	Text      string
	RawLine   string
}

// ParseResult bundles the parsed messages with line accounting so import
// reports can show how much of the file was understood.
type ParseResult struct {
	Source       string
	Messages     []ParsedMessage
	SkippedLines int
	TotalLines   int
}

// Parse parses the decoded content of a LINE export.
func Parse(content, sourceName string) ParseResult {
	res := ParseResult{Source: sourceName}
	lines := strings.Split(content, "\n")
	res.TotalLines = len(lines)

	var currentDate string // ISO yyyy-mm-dd, sticky across message lines
	var current *ParsedMessage

	flush := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			res.Messages = append(res.Messages, *current)
		}
		current = nil
	}

	for _, rawLine := range lines {
		line := strings.TrimRight(rawLine, " \t\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		// header lines
		if strings.HasPrefix(line, "[LINE]") || strings.HasPrefix(line, "LINE のトーク") ||
			savedAtRe.MatchString(line) || talkHistoryRe.MatchString(line) {
			res.SkippedLines++
			continue
		}

		// date separator line
		if d, ok := matchDateLine(line); ok {
			flush()
			currentDate = d
			continue
		}

		if m := msgFullTabRe.FindStringSubmatch(line); m != nil {
			flush()
			if d := parseDateStr(m[1]); d != "" {
				currentDate = d
			}
			current = &ParsedMessage{
				Timestamp: buildTimestamp(currentDate, m[2]),
				Speaker:   strings.TrimSpace(m[3]),
				Text:      strings.TrimSpace(m[4]),
				RawLine:   rawLine,
			}
			continue
		}
		if m := msgFullRe.FindStringSubmatch(line); m != nil {
			flush()
			if d := parseDateStr(m[1]); d != "" {
				currentDate = d
			}
			current = &ParsedMessage{
				Timestamp: buildTimestamp(currentDate, m[2]),
				Speaker:   strings.TrimSpace(m[3]),
				Text:      strings.TrimSpace(m[4]),
				RawLine:   rawLine,
			}
			continue
		}
		if m := msgTabRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &ParsedMessage{
				Timestamp: buildTimestamp(currentDate, m[1]),
				Speaker:   strings.TrimSpace(m[2]),
				Text:      strings.TrimSpace(m[3]),
				RawLine:   rawLine,
			}
			continue
		}
		if m := msgSpaceRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &ParsedMessage{
				Timestamp: buildTimestamp(currentDate, m[1]),
				Speaker:   strings.TrimSpace(m[2]),
				Text:      strings.TrimSpace(m[3]),
				RawLine:   rawLine,
			}
			continue
		}

		// continuation of a multi-line message
		if current != nil {
			current.Text += "\n" + line
			continue
		}

		res.SkippedLines++
	}

	flush()
	return res
}

// ParseFile decodes raw export bytes (sniffing the encoding) and parses
// them; the source name is the file name without its extension.
func ParseFile(raw []byte, filename string) ParseResult {
	content, _ := Decode(raw)
	base := filepath.Base(filename)
	source := strings.TrimSuffix(base, filepath.Ext(base))
	return Parse(content, source)
}

func matchDateLine(line string) (string, bool) {
	for _, pat := range dateLinePatterns {
		if m := pat.FindStringSubmatch(line); m != nil {
			if d := parseDateStr(m[1]); d != "" {
				return d, true
			}
		}
	}
	return "", false
}

// parseDateStr normalizes "2024/1/2" or "2024年1月2日" to "2024-01-02".
func parseDateStr(s string) string {
	s = strings.TrimSpace(s)
	for _, re := range []*regexp.Regexp{dateSlashRe, dateKanjiRe} {
		if m := re.FindStringSubmatch(s); m != nil {
			mo, _ := strconv.Atoi(m[2])
			da, _ := strconv.Atoi(m[3])
			return fmt.Sprintf("%s-%02d-%02d", m[1], mo, da)
		}
	}
	return ""
}

// buildTimestamp combines the sticky date with a clock string. Without a
// known date the zero time is returned; the engine treats timestamps as
// optional.
func buildTimestamp(date, clock string) time.Time {
	if date == "" {
		return time.Time{}
	}
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return time.Time{}
	}
	h, err1 := strconv.Atoi(parts[0])
	mi, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return time.Time{}
	}
	sec := 0
	if len(parts) > 2 {
		sec, _ = strconv.Atoi(parts[2])
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, mi, sec, 0, time.UTC)
}
