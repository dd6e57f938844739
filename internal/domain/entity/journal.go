package entity

import (
	"time"
)

// Journal entry processing status
const (
	JournalStatusPending   = "PENDING"
	JournalStatusFormatted = "FORMATTED"
	JournalStatusForwarded = "FORWARDED"
	JournalStatusFailed    = "FAILED"
)

// Journal entry sources
const (
	JournalSourceText  = "text"
	JournalSourceAudio = "audio"
)

// JournalEntry is one submitted journal entry and its processing trail.
type JournalEntry struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Source        string    `bson:"source" json:"source"`
	RawText       string    `bson:"rawText" json:"rawText"`
	Transcript    string    `bson:"transcript,omitempty" json:"transcript,omitempty"`
	FormattedText string    `bson:"formattedText,omitempty" json:"formattedText,omitempty"`
	Status        string    `bson:"status" json:"status"`
	ErrorDetail   string    `bson:"errorDetail,omitempty" json:"errorDetail,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	ForwardedAt   time.Time `bson:"forwardedAt,omitempty" json:"forwardedAt,omitempty"`
}
