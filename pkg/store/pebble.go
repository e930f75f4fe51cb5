// Package store persists imported conversations, masked messages and
// invite tokens in a Pebble key-value database. Keys are prefix-ordered so
// a conversation's messages iterate in insertion order:
//
//	conv:<name>                     conversation metadata
//	conv:<name>:msg:<ts>-<seq>      one masked message
//	invite:<token>                  invite record
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
)

var db *pebble.DB

// seq reduces key collisions when multiple messages share a nanosecond
// timestamp within one import.
var seq uint64

// Open opens (or creates) the Pebble database at the given path and keeps a
// global handle for simple usage in this package.
func Open(path string) error {
	var err error
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err)
		return err
	}
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool { return db != nil }

func convKey(name string) []byte { return []byte("conv:" + name) }

func msgPrefix(name string) []byte { return []byte("conv:" + name + ":msg:") }

// SaveConversation writes conversation metadata.
func SaveConversation(c models.Conversation) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}
	return db.Set(convKey(c.Name), b, pebble.Sync)
}

// GetConversation loads one conversation's metadata.
func GetConversation(name string) (models.Conversation, error) {
	var c models.Conversation
	if db == nil {
		return c, fmt.Errorf("pebble not opened; call store.Open first")
	}
	v, closer, err := db.Get(convKey(name))
	if err != nil {
		return c, err
	}
	defer closer.Close()
	if err := json.Unmarshal(v, &c); err != nil {
		return c, fmt.Errorf("invalid conversation record: %w", err)
	}
	return c, nil
}

// ListConversations returns all conversation metadata records.
func ListConversations() ([]models.Conversation, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("conv:"),
		UpperBound: []byte("conv;"), // ';' sorts just after ':'
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []models.Conversation
	for iter.First(); iter.Valid(); iter.Next() {
		if bytes.Contains(iter.Key(), []byte(":msg:")) {
			continue
		}
		var c models.Conversation
		if json.Unmarshal(iter.Value(), &c) == nil {
			out = append(out, c)
		}
	}
	return out, iter.Error()
}

// SaveMessage appends one masked message under its conversation. The key
// carries the message timestamp when known, otherwise the write time, so
// iteration yields rough chronological order.
func SaveMessage(m models.Message) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	ts := m.TS
	if ts == 0 {
		ts = time.Now().UTC().UnixNano()
	}
	s := atomic.AddUint64(&seq, 1)
	key := fmt.Sprintf("conv:%s:msg:%020d-%06d", m.Counterparty, ts, s)
	if m.ID == "" {
		m.ID = fmt.Sprintf("m-%d-%d", ts, s)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return db.Set([]byte(key), b, pebble.NoSync)
}

// Flush forces buffered writes to disk; importers call it once per batch.
func Flush() error {
	if db == nil {
		return nil
	}
	return db.Flush()
}

// ListMessages returns a conversation's messages in key order.
func ListMessages(name string) ([]models.Message, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := msgPrefix(name)
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []models.Message
	for iter.First(); iter.Valid(); iter.Next() {
		var m models.Message
		if json.Unmarshal(iter.Value(), &m) == nil {
			out = append(out, m)
		}
	}
	return out, iter.Error()
}

// ListAllMessages returns every stored message across conversations; this
// is the analysis engine's input.
func ListAllMessages() ([]models.Message, error) {
	convs, err := ListConversations()
	if err != nil {
		return nil, err
	}
	var out []models.Message
	for _, c := range convs {
		msgs, err := ListMessages(c.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, msgs...)
	}
	return out, nil
}

// DeleteConversation removes a conversation and all its messages.
func DeleteConversation(name string) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := msgPrefix(name)
	if err := db.DeleteRange(prefix, upperBound(prefix), pebble.Sync); err != nil {
		return err
	}
	return db.Delete(convKey(name), pebble.Sync)
}

// PurgeMessagesBefore deletes stored messages older than the cutoff across
// all conversations and returns how many were removed. Messages without a
// timestamp are kept. With dryRun set nothing is deleted.
func PurgeMessagesBefore(cutoff time.Time, dryRun bool) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("pebble not opened; call store.Open first")
	}
	convs, err := ListConversations()
	if err != nil {
		return 0, err
	}
	cut := cutoff.UTC().UnixNano()
	removed := 0
	for _, c := range convs {
		msgs, err := ListMessages(c.Name)
		if err != nil {
			return removed, err
		}
		kept := 0
		keptOwn := 0
		for _, m := range msgs {
			if m.TS == 0 || m.TS >= cut {
				kept++
				if m.IsSelf {
					keptOwn++
				}
				continue
			}
			removed++
		}
		if dryRun || kept == len(msgs) {
			continue
		}
		// rewrite the survivors under fresh keys
		prefix := msgPrefix(c.Name)
		if err := db.DeleteRange(prefix, upperBound(prefix), pebble.Sync); err != nil {
			return removed, err
		}
		for _, m := range msgs {
			if m.TS != 0 && m.TS < cut {
				continue
			}
			if err := SaveMessage(m); err != nil {
				return removed, err
			}
		}
		c.Messages = kept
		c.OwnCount = keptOwn
		if err := SaveConversation(c); err != nil {
			return removed, err
		}
	}
	if err := Flush(); err != nil {
		return removed, err
	}
	return removed, nil
}

// upperBound returns the smallest key greater than every key with the
// given prefix.
func upperBound(prefix []byte) []byte {
	out := append([]byte{}, prefix...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < 0xFF {
			out[i]++
			return out[:i+1]
		}
	}
	return nil
}
