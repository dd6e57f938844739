package repository

import (
	"context"
	"io"

	"checkin-service/internal/domain/entity"
)

// JournalRepository defines the interface for journal entry logs
type JournalRepository interface {
	Save(ctx context.Context, entry *entity.JournalEntry) error
	MarkFormatted(ctx context.Context, id string, formattedText string) error
	MarkForwarded(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errorDetail string) error
	FindRecent(ctx context.Context, limit int) ([]*entity.JournalEntry, error)
}

// FormatterRepository turns a raw journal entry into a formatted note.
type FormatterRepository interface {
	FormatEntry(ctx context.Context, message string) (string, error)
}

// TranscriberRepository converts an uploaded audio recording to text.
type TranscriberRepository interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// NotePublisherRepository forwards a finished note to the note capture
// service.
type NotePublisherRepository interface {
	Publish(ctx context.Context, note string) error
}
