// Package genai wraps the Gemini generateContent API for the analysis
// endpoint. All failures come back as a tagged *Error; the client never
// retries and never panics.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hr-insights-go/internal/logger"
)

const (
	defaultModel    = "gemini-2.0-flash"
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

	defaultTemperature     = 0.7
	defaultMaxOutputTokens = 512
)

type Config struct {
	APIKey   string
	Model    string
	Endpoint string
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *logrus.Entry
}

// New returns a configured client, or nil when no API key is set. A nil
// *Client is safe to call: Analyze reports KindNotConfigured.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
		log:  log.WithComponent("genai").WithField("model", cfg.Model),
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
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze sends one prompt built from the summary context and the user's
// question, and returns the first candidate's text.
func (c *Client) Analyze(ctx context.Context, query, contextBlock string) (string, error) {
	if c == nil {
		return "", &Error{Kind: KindNotConfigured, Detail: "no Gemini API key configured"}
	}

	prompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nProvide a detailed analysis.", contextBlock, query)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxOutputTokens,
		},
	})
	if err != nil {
		return "", &Error{Kind: KindUnavailable, Detail: err.Error()}
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.cfg.Endpoint, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindUnavailable, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", &Error{Kind: KindTimeout, Detail: "generation request timed out"}
		}
		c.log.WithError(err).Error("generateContent request failed")
		return "", &Error{Kind: KindUnavailable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindUnavailable, Detail: err.Error()}
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &Error{Kind: KindUnavailable, Detail: fmt.Sprintf("unparseable response: %v", err)}
	}
	if parsed.Error != nil {
		return "", &Error{Kind: KindUnavailable, Detail: fmt.Sprintf("service error %d: %s", parsed.Error.Code, parsed.Error.Message)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{Kind: KindUnavailable, Detail: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	if len(parsed.Candidates) == 0 {
		return "", &Error{Kind: KindNoCandidates, Detail: "service returned no candidates"}
	}

	cand := parsed.Candidates[0]
	c.log.WithField("finish_reason", cand.FinishReason).Debug("candidate received")

	var texts []string
	for _, p := range cand.Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	answer := strings.TrimSpace(strings.Join(texts, "\n"))
	if answer == "" {
		return "", &Error{
			Kind:   KindContentFiltered,
			Detail: fmt.Sprintf("no usable text (finish_reason=%s)", orUnknown(cand.FinishReason)),
		}
	}
	return answer, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
