package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"promptly-be/internal/dto"
	"promptly-be/internal/metrics"
	"promptly-be/internal/pkg/logger"
	"promptly-be/pkg/llm"
)

const (
	defaultSuggestionCount = 3
	maxSuggestionCount     = 5
)

type IAIService interface {
	GenerateSuggestions(ctx context.Context, req *dto.SuggestionRequest) ([]dto.SuggestionResponse, error)
	ReviseSuggestion(ctx context.Context, req *dto.ReviseRequest) (*dto.SuggestionResponse, error)
	EvaluateCustom(ctx context.Context, req *dto.EvaluateRequest) (*dto.EvaluationResponse, error)
	ReviseCustom(ctx context.Context, req *dto.ReviseRequest) (*dto.SuggestionResponse, error)
}

type aiService struct {
	llmProvider llm.LLMProvider
	metrics     *metrics.Metrics
	logger      logger.ILogger
}

func NewAIService(llmProvider llm.LLMProvider, m *metrics.Metrics, log logger.ILogger) IAIService {
	return &aiService{
		llmProvider: llmProvider,
		metrics:     m,
		logger:      log,
	}
}

const systemPrompt = `You write answers for dating-app profile prompts.
Answers are first person, under 150 characters, specific and warm. Never use hashtags or emoji.
Reply with a single JSON document and nothing else.`

type suggestionsPayload struct {
	Suggestions []struct {
		ResponseText string `json:"responseText"`
	} `json:"suggestions"`
}

type revisionPayload struct {
	ResponseText string `json:"responseText"`
}

type evaluationPayload struct {
	Score       interface{}          `json:"score"`
	Label       string               `json:"label"`
	Suggestions []dto.EvaluationNote `json:"suggestions"`
}

func (s *aiService) GenerateSuggestions(ctx context.Context, req *dto.SuggestionRequest) ([]dto.SuggestionResponse, error) {
	count := req.Count
	if count <= 0 {
		count = defaultSuggestionCount
	}
	if count > maxSuggestionCount {
		count = maxSuggestionCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Prompt: %q\n", req.Category)
	fmt.Fprintf(&b, "Tone: %s\n", strings.Join(req.Tones, ", "))
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(req.Interests, ", "))
	}
	if req.UniqueTrait != "" {
		fmt.Fprintf(&b, "Something unique about me: %s\n", req.UniqueTrait)
	}
	fmt.Fprintf(&b, "\nWrite %d different answers. Respond as {\"suggestions\":[{\"responseText\":\"...\"}]}", count)

	var payload suggestionsPayload
	if err := s.complete(ctx, "generate_suggestions", b.String(), 0.9, &payload); err != nil {
		return nil, err
	}

	res := make([]dto.SuggestionResponse, 0, count)
	for _, sug := range payload.Suggestions {
		text := strings.TrimSpace(sug.ResponseText)
		if text == "" {
			continue
		}
		res = append(res, dto.SuggestionResponse{Category: req.Category, ResponseText: text})
		if len(res) == count {
			break
		}
	}
	if len(res) == 0 {
		return nil, ErrAIMalformed
	}
	return res, nil
}

func (s *aiService) ReviseSuggestion(ctx context.Context, req *dto.ReviseRequest) (*dto.SuggestionResponse, error) {
	prompt := fmt.Sprintf(
		"Prompt: %q\nCurrent answer: %q\nRequested change: %s\n\nRewrite the answer applying the change. Respond as {\"responseText\":\"...\"}",
		req.Category, req.ResponseText, feedbackOrDefault(req.Feedback, "make it more engaging"),
	)
	return s.revise(ctx, "revise_suggestion", req.Category, prompt)
}

// ReviseCustom improves an answer the user wrote themselves, keeping their
// voice rather than replacing it.
func (s *aiService) ReviseCustom(ctx context.Context, req *dto.ReviseRequest) (*dto.SuggestionResponse, error) {
	prompt := fmt.Sprintf(
		"Prompt: %q\nThe user wrote: %q\nGuidance: %s\n\nImprove it while keeping the user's voice and facts. Respond as {\"responseText\":\"...\"}",
		req.Category, req.ResponseText, feedbackOrDefault(req.Feedback, "tighten it and make it more specific"),
	)
	return s.revise(ctx, "revise_custom", req.Category, prompt)
}

func (s *aiService) EvaluateCustom(ctx context.Context, req *dto.EvaluateRequest) (*dto.EvaluationResponse, error) {
	prompt := fmt.Sprintf(
		"Prompt: %q\nAnswer: %q\n\nRate the answer out of 10 and give up to three concrete tips. "+
			"Respond as {\"score\":\"7/10\",\"label\":\"short verdict\",\"suggestions\":[{\"title\":\"...\",\"body\":\"...\"}]}",
		req.Category, req.ResponseText,
	)

	var payload evaluationPayload
	if err := s.complete(ctx, "evaluate_custom", prompt, 0.2, &payload); err != nil {
		return nil, err
	}

	score := normalizeScore(payload.Score)
	if score == "" {
		return nil, ErrAIMalformed
	}
	notes := payload.Suggestions
	if notes == nil {
		notes = []dto.EvaluationNote{}
	}
	return &dto.EvaluationResponse{
		Score:       score,
		Label:       strings.TrimSpace(payload.Label),
		Suggestions: notes,
	}, nil
}

func (s *aiService) revise(ctx context.Context, operation, category, prompt string) (*dto.SuggestionResponse, error) {
	var payload revisionPayload
	if err := s.complete(ctx, operation, prompt, 0.7, &payload); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(payload.ResponseText)
	if text == "" {
		return nil, ErrAIMalformed
	}
	return &dto.SuggestionResponse{Category: category, ResponseText: text}, nil
}

func (s *aiService) complete(ctx context.Context, operation, prompt string, temperature float64, out interface{}) error {
	start := time.Now()
	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}

	raw, err := s.llmProvider.Chat(ctx, history, llm.WithJSON(), llm.WithTemperature(temperature))
	if err != nil {
		s.metrics.ObserveAI(operation, s.llmProvider.Name(), err, time.Since(start))
		s.logger.Error("AI", "LLM call failed", map[string]interface{}{"operation": operation, "error": err})
		return fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	if err := llm.DecodeJSON(raw, out); err != nil {
		s.metrics.ObserveAI(operation, s.llmProvider.Name(), err, time.Since(start))
		s.logger.Warn("AI", "Unusable LLM response", map[string]interface{}{"operation": operation, "error": err.Error()})
		return fmt.Errorf("%w: %v", ErrAIMalformed, err)
	}

	s.metrics.ObserveAI(operation, s.llmProvider.Name(), nil, time.Since(start))
	return nil
}

func feedbackOrDefault(feedback, fallback string) string {
	if f := strings.TrimSpace(feedback); f != "" {
		return f
	}
	return fallback
}

// normalizeScore accepts "7/10", "7" or 7 and always yields "N/10".
func normalizeScore(v interface{}) string {
	switch score := v.(type) {
	case float64:
		return fmt.Sprintf("%g/10", score)
	case string:
		score = strings.TrimSpace(score)
		if score == "" {
			return ""
		}
		if strings.Contains(score, "/") {
			return score
		}
		return score + "/10"
	default:
		return ""
	}
}
