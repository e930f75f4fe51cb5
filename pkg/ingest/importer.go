// Package ingest turns uploaded LINE export files into stored, masked
// message records. Files are processed by a small worker pool; each file
// yields a Report mirroring what was parsed, kept and dropped.
package ingest

import (
	"strings"
	"sync"
	"time"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/lineparser"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/privacy"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/store"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/telemetry"
)

// File is one uploaded export, name plus raw bytes.
type File struct {
	Name string
	Data []byte
}

// Report accounts for one processed file.
type Report struct {
	File          string `json:"file"`
	Counterparty  string `json:"counterparty"`
	Encoding      string `json:"encoding"`
	Parsed        int    `json:"parsed"`
	Own           int    `json:"own"`
	Analyzed      int    `json:"analyzed"`
	NoiseExcluded int    `json:"noise_excluded"`
	SkippedLines  int    `json:"skipped_lines"`
	Error         string `json:"error,omitempty"`
}

// Importer runs the import pipeline. SelfName is the display name whose
// messages count as the user's own; MinChars is the noise threshold.
type Importer struct {
	SelfName string
	MinChars int
	Workers  int
}

// convMu serializes the conversation metadata read-modify-write: two
// workers landing on the same counterparty would otherwise both read the
// same previous counts and drop one increment.
var convMu sync.Mutex

// Run processes the uploaded files concurrently and returns one report per
// file, in the input order.
func (im *Importer) Run(files []File) []Report {
	workers := im.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}
	reports := make([]Report, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = im.processFile(files[i])
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := store.Flush(); err != nil {
		logger.Error("import_flush_failed", "error", err)
	}
	return reports
}

func (im *Importer) processFile(f File) Report {
	rep := Report{File: f.Name}

	content, enc := lineparser.Decode(f.Data)
	rep.Encoding = enc
	res := lineparser.Parse(content, sourceName(f.Name))
	rep.Parsed = len(res.Messages)
	rep.SkippedLines = res.SkippedLines
	if len(res.Messages) == 0 {
		rep.Error = "no messages recognized"
		telemetry.ImportFailures.Inc()
		logger.Warn("import_empty_file", "file", f.Name, "total_lines", res.TotalLines)
		return rep
	}

	rep.Counterparty = counterpartyName(res, im.SelfName)

	own := 0
	stored := 0
	noise := 0
	for _, pm := range res.Messages {
		isSelf := im.SelfName != "" && strings.TrimSpace(pm.Speaker) == im.SelfName
		if isSelf {
			own++
		}
		masked, isNoise := privacy.Preprocess(pm.Text, im.MinChars)
		if isNoise {
			noise++
			telemetry.SkippedMessages.Inc()
			continue
		}
		var ts int64
		if !pm.Timestamp.IsZero() {
			ts = pm.Timestamp.UnixNano()
		}
		m := models.Message{
			Source:       res.Source,
			Counterparty: rep.Counterparty,
			TS:           ts,
			Speaker:      pm.Speaker,
			IsSelf:       isSelf,
			Text:         masked,
		}
		if err := store.SaveMessage(m); err != nil {
			rep.Error = err.Error()
			telemetry.ImportFailures.Inc()
			logger.Error("import_save_failed", "file", f.Name, "error", err)
			return rep
		}
		stored++
		telemetry.ImportedMessages.Inc()
	}
	rep.Own = own
	rep.Analyzed = stored
	rep.NoiseExcluded = noise

	conv := models.Conversation{
		Name:       rep.Counterparty,
		Source:     res.Source,
		ImportedTS: time.Now().UTC().UnixNano(),
		Messages:   stored,
		OwnCount:   own,
	}
	convMu.Lock()
	if prev, err := store.GetConversation(conv.Name); err == nil {
		conv.Messages += prev.Messages
		conv.OwnCount += prev.OwnCount
	}
	err := store.SaveConversation(conv)
	convMu.Unlock()
	if err != nil {
		rep.Error = err.Error()
		logger.Error("import_conversation_save_failed", "file", f.Name, "error", err)
		return rep
	}

	logger.Info("import_file_done", "file", f.Name, "counterparty", rep.Counterparty,
		"parsed", rep.Parsed, "stored", stored, "noise", noise, "own", own)
	return rep
}

// sourceName strips the extension from the uploaded file name.
func sourceName(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// counterpartyName derives the conversation key: LINE names exports after
// the talk partner, so the file name wins; when it looks generic the
// dominant non-self speaker is used instead.
func counterpartyName(res lineparser.ParseResult, selfName string) string {
	src := strings.TrimSpace(res.Source)
	src = strings.TrimPrefix(src, "[LINE] ")
	src = strings.TrimSuffix(src, "とのトーク履歴")
	src = strings.TrimSuffix(src, "のトーク履歴")
	if src != "" && !strings.EqualFold(src, "talk") && !strings.EqualFold(src, "chat") {
		return src
	}
	counts := map[string]int{}
	for _, m := range res.Messages {
		sp := strings.TrimSpace(m.Speaker)
		if sp == "" || sp == selfName {
			continue
		}
		counts[sp]++
	}
	best := ""
	for sp, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && sp < best) {
			best = sp
		}
	}
	if best == "" {
		return src
	}
	return best
}
