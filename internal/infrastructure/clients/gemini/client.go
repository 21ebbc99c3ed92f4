package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/providers"
	"github.com/PIGAsHIT/audiophile-proof/pkg/config"
	"github.com/PIGAsHIT/audiophile-proof/pkg/retry"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini generateContent endpoint to analyze a
// headphone's sound characteristics.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	retryCfg   retry.Config
}

// NewClient creates a new Gemini client. An empty API key is accepted;
// Analyze then short-circuits to unavailable without a network call.
func NewClient(cfg *config.GeminiConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		retryCfg: retry.Fixed(3, time.Second),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze requests a sound-characteristic analysis for a brand/model pair.
// Transport errors, non-2xx statuses and malformed JSON all count against
// the retry budget; exhaustion yields providers.ErrAnalysisUnavailable,
// never a transport error.
func (c *Client) Analyze(ctx context.Context, brand, model string) (*entities.AIAnalysis, error) {
	if c.apiKey == "" {
		return nil, providers.ErrAnalysisUnavailable
	}

	prompt := buildAnalysisPrompt(brand, model)

	var analysis *entities.AIAnalysis
	err := retry.DoWithLog(ctx, c.retryCfg, func() error {
		parsed, err := c.generate(ctx, prompt)
		if err != nil {
			return err
		}
		analysis = parsed
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Str("model", c.model).
			Msg("gemini analysis attempt failed")
	})
	if err != nil {
		log.Warn().Err(err).Str("brand", brand).Str("headphone_model", model).
			Msg("gemini analysis unavailable after retries")
		return nil, providers.ErrAnalysisUnavailable
	}

	return analysis, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (*entities.AIAnalysis, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini request failed with status %d", resp.StatusCode)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	var text string
	for _, candidate := range envelope.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				text = p.Text
				break
			}
		}
		if text != "" {
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("gemini response missing output text")
	}

	var analysis entities.AIAnalysis
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	// No validation beyond well-formedness: missing fields are defaulted
	// downstream during assembly.
	return &analysis, nil
}

// stripCodeFences removes Markdown code blocks some models wrap around
// JSON output despite the response mime type.
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
