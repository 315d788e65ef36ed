package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/pkg/logger"
)

const (
	OpenAIService      = "openai"
	DefaultOpenAIModel = "gpt-4o-mini"
)

var ErrEmptyCompletion = errors.New("completion has no choices")

// KeywordSource is the per-category keyword dictionary used in title prompts.
type KeywordSource interface {
	Keywords(ctx context.Context, categoryID, language string) (map[string]string, error)
}

var languageNames = map[string]string{
	"de": "German",
	"en": "English",
	"fr": "French",
	"cs": "Czech",
	"sk": "Slovak",
	"it": "Italian",
	"es": "Spanish",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

const parameterPrompt = `You translate car part parameters from Polish to %[1]s.
The input is a JSON object of parameter name to parameter value. Answer with a JSON object only, keys and values translated to %[1]s.
Values split with the pipe "|" character are translated one by one and joined with "|" again, keeping the number of parts.
The parameter "Numer katalogowy oryginału" (in %[1]s "OE/OEM Referenznummer(n)") is the exception: join its parts with ",".
Standalone numbers stay as they are. Values that are already correct in %[1]s stay as they are.`

const titlePrompt = `You translate auction titles and descriptions of aftermarket car parts from Polish to %[1]s,
using the vocabulary of %[1]s car part marketplaces. Fix capitalisation and punctuation, the input may be all lower case.
Prefer the following dictionary (Polish to %[1]s) whenever a term occurs:
%[2]s
Answer with a JSON object only: {"title": "...", "description": "..."}.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type OpenAIClient struct {
	*BaseClient
	model    string
	keywords KeywordSource
}

// NewOpenAIClient: keywords may be nil, the dictionary is then empty.
func NewOpenAIClient(apiURL, apiKey, model string, keywords KeywordSource, log logger.Logger) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	var auth AuthEngine
	if a := NewBearerAuth(apiKey); a != nil {
		auth = a
	}
	return &OpenAIClient{
		BaseClient: NewBaseClient(apiURL, OpenAIService, auth, rate.NewLimiter(2, 2), log),
		model:      model,
		keywords:   keywords,
	}
}

// complete runs one chat completion and decodes the JSON answer into out.
func (c *OpenAIClient) complete(ctx context.Context, system, user string, out interface{}) error {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	req.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal completion request: %w", err)
	}

	var resp chatResponse
	err = c.doRequest(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/chat/completions",
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, &resp)
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return ErrEmptyCompletion
	}

	content := stripFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("completion is not the expected JSON: %w", err)
	}
	return nil
}

// stripFence removes a ```json ... ``` wrapper some models add.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (c *OpenAIClient) TranslateParameters(ctx context.Context, params map[string]string, language string) (map[string]string, error) {
	if len(params) == 0 {
		return map[string]string{}, nil
	}
	input, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameters: %w", err)
	}

	var raw map[string]interface{}
	system := fmt.Sprintf(parameterPrompt, languageName(language))
	if err := c.complete(ctx, system, string(input), &raw); err != nil {
		return nil, fmt.Errorf("translate parameters: %w", err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out, nil
}

func (c *OpenAIClient) TranslateTitleDescription(ctx context.Context, title, description, categoryID, language string) (models.TranslatedText, error) {
	dictionary := map[string]string{}
	if c.keywords != nil {
		kw, err := c.keywords.Keywords(ctx, categoryID, language)
		if err != nil {
			return models.TranslatedText{}, fmt.Errorf("keyword dictionary: %w", err)
		}
		dictionary = kw
	}
	dict, err := json.MarshalIndent(dictionary, "", "  ")
	if err != nil {
		return models.TranslatedText{}, fmt.Errorf("failed to marshal dictionary: %w", err)
	}

	var resp struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	system := fmt.Sprintf(titlePrompt, languageName(language), dict)
	user := fmt.Sprintf("Title: %s\nDescription: %s", strings.ToLower(title), strings.ToLower(description))
	if err := c.complete(ctx, system, user, &resp); err != nil {
		return models.TranslatedText{}, fmt.Errorf("translate title: %w", err)
	}
	return models.TranslatedText{Name: resp.Title, Description: resp.Description}, nil
}
