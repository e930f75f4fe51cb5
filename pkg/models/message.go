package models

// Message is one imported chat message. Records are immutable once created:
// the import pipeline produces them and the analysis engine consumes them
// read-only. Text is stored already privacy-masked.
type Message struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Counterparty string `json:"counterparty"`
	// TS is unix nanoseconds; 0 when the export carried no parseable date.
	TS      int64  `json:"ts,omitempty"`
	Speaker string `json:"speaker"`
	IsSelf  bool   `json:"is_self"`
	Text    string `json:"text"`
}

// Conversation is the stored metadata for one imported talk room.
type Conversation struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	ImportedTS int64  `json:"imported_ts"`
	Messages   int    `json:"messages"`
	OwnCount   int    `json:"own_count"`
}

// Invite is a shareable access token with an expiry. A valid invite
// authenticates a request the same way a frontend passcode would.
type Invite struct {
	Token     string `json:"token"`
	CreatedTS int64  `json:"created_ts"`
	ExpiresTS int64  `json:"expires_ts"`
	Note      string `json:"note,omitempty"`
}
