package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
)

func inviteKey(token string) []byte { return []byte("invite:" + token) }

// SaveInvite persists an invite token record.
func SaveInvite(inv models.Invite) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	b, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to marshal invite: %w", err)
	}
	return db.Set(inviteKey(inv.Token), b, pebble.Sync)
}

// GetInvite loads one invite by token. Missing tokens return pebble.ErrNotFound.
func GetInvite(token string) (models.Invite, error) {
	var inv models.Invite
	if db == nil {
		return inv, fmt.Errorf("pebble not opened; call store.Open first")
	}
	v, closer, err := db.Get(inviteKey(token))
	if err != nil {
		return inv, err
	}
	defer closer.Close()
	if err := json.Unmarshal(v, &inv); err != nil {
		return inv, fmt.Errorf("invalid invite record: %w", err)
	}
	return inv, nil
}

// ListInvites returns all invite records.
func ListInvites() ([]models.Invite, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte("invite:")
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []models.Invite
	for iter.First(); iter.Valid(); iter.Next() {
		var inv models.Invite
		if json.Unmarshal(iter.Value(), &inv) == nil {
			out = append(out, inv)
		}
	}
	return out, iter.Error()
}

// DeleteInvite removes an invite token.
func DeleteInvite(token string) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	return db.Delete(inviteKey(token), pebble.Sync)
}

// DeleteExpiredInvites removes invites whose expiry has passed and returns
// how many were deleted.
func DeleteExpiredInvites(now time.Time) (int, error) {
	invs, err := ListInvites()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, inv := range invs {
		if inv.ExpiresTS != 0 && now.UnixNano() >= inv.ExpiresTS {
			if err := DeleteInvite(inv.Token); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// ValidInvite reports whether the token exists and has not expired.
func ValidInvite(token string, now time.Time) bool {
	inv, err := GetInvite(token)
	if err != nil {
		return false
	}
	return inv.ExpiresTS == 0 || now.UnixNano() < inv.ExpiresTS
}
