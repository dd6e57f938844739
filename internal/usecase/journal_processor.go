package usecase

import (
	"context"
	"io"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
	"checkin-service/pkg/metrics"
)

// JournalProcessor formats journal entries and forwards them to the note
// capture service, keeping an entry log in Mongo along the way.
type JournalProcessor struct {
	journalRepo repository.JournalRepository
	formatter   repository.FormatterRepository
	transcriber repository.TranscriberRepository
	publisher   repository.NotePublisherRepository
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewJournalProcessor creates a new journal processor
func NewJournalProcessor(
	journalRepo repository.JournalRepository,
	formatter repository.FormatterRepository,
	transcriber repository.TranscriberRepository,
	publisher repository.NotePublisherRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *JournalProcessor {
	return &JournalProcessor{
		journalRepo: journalRepo,
		formatter:   formatter,
		transcriber: transcriber,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// SubmitText formats a written journal entry and forwards it. Formatting
// failures surface to the caller; forwarding failures are logged only, since
// the formatted entry is already safe in the entry log.
func (p *JournalProcessor) SubmitText(ctx context.Context, message string) (*entity.JournalEntry, error) {
	entry := &entity.JournalEntry{
		Source:  entity.JournalSourceText,
		RawText: message,
	}

	return p.process(ctx, entry)
}

// SubmitAudio transcribes an uploaded recording and runs the transcript
// through the same format-and-forward path as a written entry.
func (p *JournalProcessor) SubmitAudio(ctx context.Context, filename string, audio io.Reader) (*entity.JournalEntry, error) {
	transcript, err := p.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		p.logger.Error("Transcription failed", "filename", filename, "error", err)
		p.metrics.ErrorsCount.WithLabelValues("transcribe").Inc()
		return nil, err
	}

	entry := &entity.JournalEntry{
		Source:     entity.JournalSourceAudio,
		RawText:    transcript,
		Transcript: transcript,
	}

	return p.process(ctx, entry)
}

func (p *JournalProcessor) process(ctx context.Context, entry *entity.JournalEntry) (*entity.JournalEntry, error) {
	if err := p.journalRepo.Save(ctx, entry); err != nil {
		p.logger.Error("Failed to save journal entry", "error", err)
		return nil, err
	}

	formatted, err := p.formatter.FormatEntry(ctx, entry.RawText)
	if err != nil {
		p.logger.Error("Journal formatting failed", "entryId", entry.ID, "error", err)
		p.metrics.ErrorsCount.WithLabelValues("format").Inc()
		if markErr := p.journalRepo.MarkFailed(ctx, entry.ID, err.Error()); markErr != nil {
			p.logger.Error("Failed to mark journal entry failed", "entryId", entry.ID, "error", markErr)
		}
		return nil, err
	}

	entry.FormattedText = formatted
	entry.Status = entity.JournalStatusFormatted
	if err := p.journalRepo.MarkFormatted(ctx, entry.ID, formatted); err != nil {
		p.logger.Error("Failed to record formatted entry", "entryId", entry.ID, "error", err)
	}

	// Fire-and-forget: a webhook hiccup should not fail the submission.
	if err := p.publisher.Publish(ctx, formatted); err != nil {
		p.logger.Error("Failed to forward note, entry kept locally", "entryId", entry.ID, "error", err)
		p.metrics.ErrorsCount.WithLabelValues("forward").Inc()
	} else {
		entry.Status = entity.JournalStatusForwarded
		if err := p.journalRepo.MarkForwarded(ctx, entry.ID); err != nil {
			p.logger.Error("Failed to mark journal entry forwarded", "entryId", entry.ID, "error", err)
		}
	}

	p.metrics.JournalEntries.WithLabelValues(entry.Source).Inc()

	return entry, nil
}

// Recent returns the latest journal entries from the entry log.
func (p *JournalProcessor) Recent(ctx context.Context, limit int) ([]*entity.JournalEntry, error) {
	return p.journalRepo.FindRecent(ctx, limit)
}
