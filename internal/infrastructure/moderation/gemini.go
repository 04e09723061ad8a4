package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lumatch/lumatch-backend/internal/usecase/profile"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// scamPattern catches the obvious commercial/scam phrases before any API
// round trip is spent.
var scamPattern = regexp.MustCompile(`(?i)(sugar\s*daddy|whatsapp\s*number|onlyfans|escort|crypto|bitcoin|venmo|paypal)`)

// GeminiModerator screens profile free text: a fast keyword pass first, then
// a model verdict. Implements profile.Moderator.
type GeminiModerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger
}

func NewGeminiModerator(apiKey string, log *zap.Logger) (*GeminiModerator, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.1)

	return &GeminiModerator{client: client, model: model, log: log}, nil
}

func (m *GeminiModerator) Close() {
	m.client.Close()
}

type verdictJSON struct {
	NSFW       bool   `json:"nsfw"`
	Harassment bool   `json:"harassment"`
	Scam       bool   `json:"scam"`
	Reason     string `json:"reason"`
}

func (m *GeminiModerator) ModerateText(ctx context.Context, text string) (*profile.ModerationVerdict, error) {
	if scamPattern.MatchString(text) {
		return &profile.ModerationVerdict{Flagged: true, Reason: "suspicious keywords (scam/commercial)"}, nil
	}

	prompt := fmt.Sprintf(`Review the following dating profile text for policy violations.
Text: """%s"""
Answer ONLY with compact JSON:
{"nsfw":true|false,"harassment":true|false,"scam":true|false,"reason":"short"}`, truncate(text, 1800))

	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("moderation request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("moderation: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	raw := strings.TrimSpace(sb.String())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var v verdictJSON
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		// An unparseable verdict is treated as a pass, not an outage.
		m.log.Warn("unparseable moderation verdict", zap.String("raw", raw))
		return &profile.ModerationVerdict{}, nil
	}

	if v.NSFW || v.Harassment || v.Scam {
		reason := v.Reason
		if reason == "" {
			reason = "policy violation"
		}
		return &profile.ModerationVerdict{Flagged: true, Reason: reason}, nil
	}
	return &profile.ModerationVerdict{}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
