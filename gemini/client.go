package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the Google Gemini REST API to produce data-grounded chat
// answers. This package is the only one that performs outbound network calls;
// the analysis engine never touches it.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// Config holds the Gemini connection settings, normally sourced from env.
type Config struct {
	APIKey   string
	Model    string
	Endpoint string
}

// New creates a Gemini client. Model and endpoint default to the flash model
// on the public generative-language API.
func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-flash-latest"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether an API key is configured. Without one the chat
// endpoint degrades to an explicit unavailable message instead of failing.
func (c *Client) Enabled() bool { return c.apiKey != "" }

var languageNames = map[string]string{
	"hi": "Hindi (Devanagari script)",
	"gu": "Gujarati",
	"en": "English",
}

// systemInstruction frames the assistant and injects the computed data
// context so answers cite real numbers rather than hallucinated ones.
func systemInstruction(dataContext, language string) string {
	target, ok := languageNames[language]
	if !ok {
		target = "English"
	}
	return fmt.Sprintf(`You are 'Aadhaar Sahayak', an advanced AI assistant for Aadhaar service analytics.
Your goal is to provide deeply analytical, comprehensive, and helpful responses regarding Aadhaar enrolment, demographic, and biometric data.

CRITICAL INSTRUCTION: You MUST provide your ENTIRE response in %s.

Data Context Summary:
%s

Guidelines for Response:
1. Adaptive Analysis: if specific State/District data is provided in the context (under "SPECIFIC DATA FOR..."), you must use it and compare against national totals where possible.
2. Structured Format: Observation (cite specific numbers), Reasoning (infer from demographics, urbanization, socio-economic factors), Solution (specific actionable government steps).
3. Tone: professional, data-driven, accessible. Use Markdown tables for comparisons. Strictly adhere to %s.
4. If the user asks a simple fact, keep it brief. For "state wise" or "district wise" questions, summarize leaders and laggards from the provided tables.`,
		target, dataContext, target)
}

// ChatResponse sends a user message with its data context and returns the
// model's text reply.
func (c *Client) ChatResponse(message, dataContext, language string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("gemini: no API key configured")
	}
	prompt := systemInstruction(dataContext, language) + "\n\nUser Message: " + message
	return c.generate(prompt)
}

type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (c *Client) generate(prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)

	body, err := json.Marshal(request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	resp, err := c.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini: API error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response (status %d)", resp.StatusCode)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
