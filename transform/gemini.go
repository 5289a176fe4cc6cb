package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultModel  = "gemini-2.5-flash-lite-preview-06-17"
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	// Separator the service prompt format expects between the instruction
	// and the captured selection.
	promptSeparator = "\n\nSelected text: "

	requestTimeout = 30 * time.Second
)

// Gemini calls the generateContent endpoint. One call per Transform, with a
// bounded timeout; the guard upstream ensures calls are never concurrent.
type Gemini struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewGemini(apiKey string) *Gemini {
	return newGemini(apiKey, geminiBaseURL+"/"+defaultModel+":generateContent")
}

func newGemini(apiKey, apiURL string) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
	}
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Transform(ctx context.Context, basePrompt, selection string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: basePrompt + promptSeparator + selection}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 2048,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Kind: KindMalformed, Msg: "encoding request", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", g.apiURL+"?key="+url.QueryEscape(g.apiKey), bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindNetwork, Msg: "building request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &Error{Kind: KindTimeout, Msg: "request timed out", Err: err}
		}
		return "", &Error{Kind: KindNetwork, Msg: "request failed", Err: err}
	}
	defer resp.Body.Close()

	var gResp geminiResponse
	dec := json.NewDecoder(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", &Error{Kind: KindAuth, Msg: fmt.Sprintf("API rejected credentials (%d)", resp.StatusCode)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &Error{Kind: KindRateLimited, Msg: "API rate limit exceeded"}
	case resp.StatusCode != http.StatusOK:
		return "", &Error{Kind: KindAPI, Msg: fmt.Sprintf("API error %d", resp.StatusCode)}
	}

	if err := dec.Decode(&gResp); err != nil {
		return "", &Error{Kind: KindMalformed, Msg: "response parse error", Err: err}
	}

	text := firstCandidateText(&gResp)
	if strings.TrimSpace(text) == "" {
		return "", &Error{Kind: KindEmpty, Msg: "response contained no text candidate"}
	}
	return text, nil
}

func firstCandidateText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
