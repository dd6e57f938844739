package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"checkin-service/internal/domain/entity"
	"checkin-service/pkg/logger"
)

func newProcessor(journal *MockJournalRepository, formatter *MockFormatter, transcriber *MockTranscriber, publisher *MockNotePublisher) *JournalProcessor {
	return NewJournalProcessor(journal, formatter, transcriber, publisher, newTestMetrics(), logger.NewLogger())
}

func TestSubmitTextFormatsAndForwards(t *testing.T) {
	journal := NewMockJournalRepository()
	publisher := &MockNotePublisher{}
	var published string
	publisher.PublishFunc = func(ctx context.Context, note string) error {
		published = note
		return nil
	}
	processor := newProcessor(journal, &MockFormatter{}, &MockTranscriber{}, publisher)

	entry, err := processor.SubmitText(context.Background(), "today I flew to SFO")
	if err != nil {
		t.Fatalf("SubmitText returned error: %v", err)
	}

	if entry.Source != entity.JournalSourceText {
		t.Errorf("source = %q, want %q", entry.Source, entity.JournalSourceText)
	}
	if entry.Status != entity.JournalStatusForwarded {
		t.Errorf("status = %q, want %q", entry.Status, entity.JournalStatusForwarded)
	}
	if !strings.Contains(entry.FormattedText, "today I flew to SFO") {
		t.Errorf("formatted text lost the message: %q", entry.FormattedText)
	}
	if published != entry.FormattedText {
		t.Errorf("published %q, want the formatted text", published)
	}

	stored := journal.Entries[entry.ID]
	if stored == nil {
		t.Fatal("entry not saved")
	}
	if stored.Status != entity.JournalStatusForwarded {
		t.Errorf("stored status = %q, want %q", stored.Status, entity.JournalStatusForwarded)
	}
}

func TestSubmitTextFormatterFailureMarksFailed(t *testing.T) {
	journal := NewMockJournalRepository()
	formatter := &MockFormatter{
		FormatFunc: func(ctx context.Context, message string) (string, error) {
			return "", errors.New("model overloaded")
		},
	}
	publisher := &MockNotePublisher{}
	processor := newProcessor(journal, formatter, &MockTranscriber{}, publisher)

	_, err := processor.SubmitText(context.Background(), "hello")
	if err == nil {
		t.Fatal("SubmitText succeeded despite formatter failure")
	}
	if publisher.PublishCalls != 0 {
		t.Error("note forwarded despite formatter failure")
	}

	stored := journal.Entries["entry-1"]
	if stored == nil {
		t.Fatal("raw entry not saved before formatting")
	}
	if stored.Status != entity.JournalStatusFailed {
		t.Errorf("stored status = %q, want %q", stored.Status, entity.JournalStatusFailed)
	}
	if stored.ErrorDetail != "model overloaded" {
		t.Errorf("errorDetail = %q", stored.ErrorDetail)
	}
}

func TestSubmitTextWebhookFailureKeepsEntry(t *testing.T) {
	journal := NewMockJournalRepository()
	publisher := &MockNotePublisher{
		PublishFunc: func(ctx context.Context, note string) error {
			return errors.New("webhook unreachable")
		},
	}
	processor := newProcessor(journal, &MockFormatter{}, &MockTranscriber{}, publisher)

	entry, err := processor.SubmitText(context.Background(), "hello")
	if err != nil {
		t.Fatalf("SubmitText returned error: %v", err)
	}
	// Forwarding is best effort; the entry stays at formatted.
	if entry.Status != entity.JournalStatusFormatted {
		t.Errorf("status = %q, want %q", entry.Status, entity.JournalStatusFormatted)
	}
	if stored := journal.Entries[entry.ID]; stored.Status != entity.JournalStatusFormatted {
		t.Errorf("stored status = %q, want %q", stored.Status, entity.JournalStatusFormatted)
	}
}

func TestSubmitAudioTranscribesFirst(t *testing.T) {
	journal := NewMockJournalRepository()
	transcriber := &MockTranscriber{
		TranscribeFunc: func(ctx context.Context, filename string, audio io.Reader) (string, error) {
			if filename != "memo.m4a" {
				t.Errorf("filename = %q, want memo.m4a", filename)
			}
			return "spoken words", nil
		},
	}
	processor := newProcessor(journal, &MockFormatter{}, transcriber, &MockNotePublisher{})

	entry, err := processor.SubmitAudio(context.Background(), "memo.m4a", strings.NewReader("fake audio"))
	if err != nil {
		t.Fatalf("SubmitAudio returned error: %v", err)
	}

	if entry.Source != entity.JournalSourceAudio {
		t.Errorf("source = %q, want %q", entry.Source, entity.JournalSourceAudio)
	}
	if entry.Transcript != "spoken words" {
		t.Errorf("transcript = %q", entry.Transcript)
	}
	if !strings.Contains(entry.FormattedText, "spoken words") {
		t.Errorf("formatted text lost the transcript: %q", entry.FormattedText)
	}
}

func TestSubmitAudioTranscriptionFailure(t *testing.T) {
	journal := NewMockJournalRepository()
	transcriber := &MockTranscriber{
		TranscribeFunc: func(ctx context.Context, filename string, audio io.Reader) (string, error) {
			return "", errors.New("unsupported codec")
		},
	}
	processor := newProcessor(journal, &MockFormatter{}, transcriber, &MockNotePublisher{})

	_, err := processor.SubmitAudio(context.Background(), "memo.m4a", strings.NewReader("fake audio"))
	if err == nil {
		t.Fatal("SubmitAudio succeeded despite transcription failure")
	}
	if len(journal.Entries) != 0 {
		t.Error("entry saved despite transcription failure")
	}
}
