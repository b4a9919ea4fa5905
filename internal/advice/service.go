package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/boticaviva/backend/pkg/config"
	"github.com/boticaviva/backend/pkg/logger"
)

const (
	defaultTimeout    = 20 * time.Second
	responseReadLimit = 1 << 20
	maxQuestionRunes  = 2000
)

// FallbackMessage is returned whenever the assistant cannot answer. Shoppers
// always get a response, never an error page.
const FallbackMessage = "Por el momento no puedo darte una recomendación. " +
	"Por favor consulta con nuestro químico farmacéutico en tienda o con tu médico de confianza."

const systemPrompt = "Eres el asistente de una farmacia en línea. Responde en español, " +
	"breve y claro. Recomienda siempre consultar a un médico o químico farmacéutico para " +
	"síntomas serios, dosis o interacciones. Nunca diagnostiques."

// Service answers free-form health questions from shoppers.
type Service interface {
	GetAdvice(ctx context.Context, question string) string
}

type service struct {
	httpClient *http.Client
	cfg        config.AdviceConfig
	log        *logger.Logger
}

// Option configures optional service behavior.
type Option func(*service)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *service) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewService wires the advice service.
func NewService(cfg config.AdviceConfig, log *logger.Logger, opts ...Option) (Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	s := &service{
		httpClient: &http.Client{Timeout: defaultTimeout},
		cfg:        cfg,
		log:        log,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GetAdvice never returns an error. Any failure along the way, including a
// missing API key, collapses into the fallback message.
func (s *service) GetAdvice(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)
	if question == "" || s.cfg.APIKey == "" {
		return FallbackMessage
	}
	if runes := []rune(question); len(runes) > maxQuestionRunes {
		question = string(runes[:maxQuestionRunes])
	}

	answer, err := s.ask(ctx, question)
	if err != nil {
		s.log.Warn(ctx, "advice request failed")
		return FallbackMessage
	}
	return answer
}

func (s *service) ask(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseReadLimit))
	if err != nil {
		return "", fmt.Errorf("reading chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}

	answer := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("chat response is empty")
	}
	return answer, nil
}
