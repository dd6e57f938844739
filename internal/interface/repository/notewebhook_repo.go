package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
)

// NoteWebhookRepository forwards finished notes to the note capture webhook
// (an IFTTT-style trigger URL).
type NoteWebhookRepository struct {
	logger     logger.Logger
	webhookURL string
	client     *http.Client
}

// NewNoteWebhookRepository creates a new note webhook repository
func NewNoteWebhookRepository(webhookURL string, logger logger.Logger) repository.NotePublisherRepository {
	return &NoteWebhookRepository{
		logger:     logger,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Publish posts the note to the webhook. The trigger expects the note in a
// "value1" field.
func (r *NoteWebhookRepository) Publish(ctx context.Context, note string) error {
	body, err := json.Marshal(map[string]string{"value1": note})
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("note webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	responseText, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("note webhook returned status %d: %s", resp.StatusCode, string(responseText))
	}

	r.logger.Info("Note forwarded to capture webhook", "response", string(responseText))

	return nil
}
