package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"checkin-service/pkg/logger"
	"checkin-service/templates"
)

const (
	openaiBaseURL         = "https://api.openai.com/v1"
	openaiChatModel       = "gpt-4o-mini"
	openaiTranscribeModel = "whisper-1"
)

// OpenAIAssistantRepository formats journal entries and transcribes audio via
// the OpenAI API. It implements both FormatterRepository and
// TranscriberRepository.
type OpenAIAssistantRepository struct {
	logger  logger.Logger
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIAssistantRepository creates a new OpenAI assistant repository
func NewOpenAIAssistantRepository(apiKey string, logger logger.Logger) *OpenAIAssistantRepository {
	return &OpenAIAssistantRepository{
		logger:  logger,
		apiKey:  apiKey,
		baseURL: openaiBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openaiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// FormatEntry sends a raw journal entry through the chat completion API with
// the journaling system prompt and returns the formatted note.
func (r *OpenAIAssistantRepository) FormatEntry(ctx context.Context, message string) (string, error) {
	if r.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	body, err := json.Marshal(chatRequest{
		Model: openaiChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: templates.JournalSystemPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", r.apiError(resp)
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}

	return response.Choices[0].Message.Content, nil
}

// Transcribe uploads an audio recording to the transcription API and returns
// the transcript text.
func (r *OpenAIAssistantRepository) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if r.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to read audio: %w", err)
	}
	if err := writer.WriteField("model", openaiTranscribeModel); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", r.apiError(resp)
	}

	var response struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	return response.Text, nil
}

func (r *OpenAIAssistantRepository) apiError(resp *http.Response) error {
	var errorBody openaiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errorBody); err != nil || errorBody.Error.Message == "" {
		return fmt.Errorf("OpenAI API returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("OpenAI API error (%s): %s", errorBody.Error.Type, errorBody.Error.Message)
}
