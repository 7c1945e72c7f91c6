// Package openai implements the inference.Client contract against the OpenAI
// HTTP API: chat completions for interpretations and card identification, and
// image generation for card artwork.
package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	"resty.dev/v3"

	"github.com/hollyoak/arcanum/internal/inference"
	"github.com/hollyoak/arcanum/internal/tarot"
)

type Client struct {
	httpClient       *resty.Client
	apiKey           string
	model            string
	imageModel       string
	maxRetryAttempts uint
}

// NewClient creates an OpenAI-backed inference client. retryAttempts is the
// number of transport-level retries on transient failures; zero keeps every
// call single-shot so the reading lifecycle fully owns retry policy.
func NewClient(apiKey, model, imageModel string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		apiKey:           apiKey,
		model:            model,
		imageModel:       imageModel,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role `json:"role"`
	Content any  `json:"content"`
}

// ContentPart is one element of a multimodal user message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// isRetryableCause reports whether a failure is worth a transport-level retry.
// Auth and incomplete-structure failures never are.
func isRetryableCause(cause inference.ErrorCause) bool {
	switch cause {
	case inference.CauseNetwork, inference.CauseTimeout, inference.CauseRateLimited,
		inference.CauseServer, inference.CauseMalformedResponse:
		return true
	}
	return false
}

func (client *Client) do(ctx context.Context, f func() error) error {
	return retry.Do(
		func() error {
			if err := f(); err != nil {
				var serviceErr *inference.ServiceError
				if errors.As(err, &serviceErr) && !isRetryableCause(serviceErr.Cause) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func (client *Client) checkAPIKey() error {
	if client.apiKey == "" {
		return inference.NewServiceError(inference.CauseAuth, "OPENAI_API_KEY is not set", nil)
	}
	return nil
}

// classifyTransport converts a resty transport error into a ServiceError.
func classifyTransport(err error, operation string) *inference.ServiceError {
	message := fmt.Sprintf("%s request failed", operation)
	errText := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(errText, "timeout") || strings.Contains(errText, "deadline exceeded"):
		return inference.NewServiceError(inference.CauseTimeout, message, err)
	default:
		return inference.NewServiceError(inference.CauseNetwork, message, err)
	}
}

// classifyStatus converts a non-2xx HTTP response into a ServiceError.
func classifyStatus(statusCode int, body string, operation string) *inference.ServiceError {
	message := fmt.Sprintf("%s response error %d: %s", operation, statusCode, body)
	lowerBody := strings.ToLower(body)
	switch {
	case statusCode == 401 || statusCode == 403 || strings.Contains(lowerBody, "api key") || strings.Contains(lowerBody, "permission denied"):
		return inference.NewServiceError(inference.CauseAuth, message, nil)
	case statusCode == 408 || strings.Contains(lowerBody, "deadline exceeded"):
		return inference.NewServiceError(inference.CauseTimeout, message, nil)
	case statusCode == 429 || strings.Contains(lowerBody, "resource exhausted"):
		return inference.NewServiceError(inference.CauseRateLimited, message, nil)
	case statusCode >= 500:
		return inference.NewServiceError(inference.CauseServer, message, nil)
	}
	return inference.NewServiceError(inference.CauseUnknown, message, nil)
}

// GenerateInterpretation implements the inference.Client interface.
func (client *Client) GenerateInterpretation(
	ctx context.Context,
	params inference.InterpretationRequest,
) (inference.Interpretation, error) {
	var result inference.Interpretation
	if err := client.do(ctx, func() error {
		response, err := client.generateInterpretation(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.Interpretation{}, err
	}
	return result, nil
}

const interpretationSystemPrompt = `You are a wise, empathetic Tarot reader writing for a personal journal companion. Your tone is calm, sacred, and encouraging, avoiding clichés. Weave the meanings of all cards into a single, coherent narrative that directly addresses the user's focus, and use the provided keywords as inspiration.

Return ONLY a JSON object with this exact shape:
{
  "overall": "<a synthesized narrative for the whole spread, covering both the outer, worldly situation and the inner, psychological landscape>",
  "cards": [
    {"cardName": "<card name exactly as given>", "meaning": "<this card's meaning within its position and the spread as a whole>"}
  ]
}

Include one "cards" element per drawn card, in the order given. No text outside the JSON.`

func (client *Client) interpretationRequestBody(params inference.InterpretationRequest) ChatCompletionRequest {
	var cardLines []string
	for i, drawn := range params.Cards {
		position := ""
		if i < len(params.Spread.Positions) {
			position = params.Spread.Positions[i].Title
		}
		line := fmt.Sprintf("- %s: %s (%s)", position, drawn.Card.Name, drawn.Orientation())
		if keywords := drawn.Card.Keywords(drawn.IsReversed); len(keywords) > 0 {
			line += " | Keywords to consider: " + strings.Join(keywords, ", ")
		}
		cardLines = append(cardLines, line)
	}

	focus := "A general reading."
	if params.Question != "" {
		focus = fmt.Sprintf("%q", params.Question)
	}

	contextLines := []string{
		"Integrate the following spiritual and natural context as a thematic lens for the reading. For instance, a \"New Moon\" might suggest new beginnings, while \"Autumn\" could imply harvest or letting go.",
		"- Lunar Phase: " + params.Almanac.LunarPhase,
		"- Season: " + params.Almanac.Season,
	}
	if params.Almanac.Holiday != "" {
		contextLines = append(contextLines, "- Special Day: "+params.Almanac.Holiday)
	}

	userPrompt := fmt.Sprintf(`User's Focus: %s

Spread: %s

Cards Drawn:
%s

Thematic Context:
%s`, focus, params.Spread.Name, strings.Join(cardLines, "\n"), strings.Join(contextLines, "\n"))

	return ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.8,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Messages: []Message{
			{Role: RoleSystem, Content: interpretationSystemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
	}
}

func (client *Client) generateInterpretation(
	ctx context.Context,
	params inference.InterpretationRequest,
) (inference.Interpretation, error) {
	if err := client.checkAPIKey(); err != nil {
		return inference.Interpretation{}, err
	}

	requestBody := client.interpretationRequestBody(params)
	content, err := client.chatCompletion(ctx, requestBody, "interpretation")
	if err != nil {
		return inference.Interpretation{}, err
	}

	var decoded inference.Interpretation
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		slog.Default().Error("Failed to parse interpretation response as JSON",
			"content", content,
			"error", err)
		return inference.Interpretation{}, inference.NewServiceError(
			inference.CauseMalformedResponse,
			fmt.Sprintf("json.Unmarshal(%s)", content),
			err,
		)
	}
	if decoded.Overall == "" || len(decoded.Cards) == 0 {
		return inference.Interpretation{}, inference.NewServiceError(
			inference.CauseIncompleteResponse,
			fmt.Sprintf("interpretation is missing fields: %s", content),
			nil,
		)
	}
	return decoded, nil
}

// chatCompletion posts a chat completion request and returns the first
// choice's content.
func (client *Client) chatCompletion(ctx context.Context, requestBody ChatCompletionRequest, operation string) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", classifyTransport(err, operation)
	}
	if response.IsError() {
		return "", classifyStatus(response.StatusCode(), response.String(), operation)
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", inference.NewServiceError(
			inference.CauseIncompleteResponse,
			fmt.Sprintf("empty response body or choices: %s", response.String()),
			nil,
		)
	}
	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", inference.NewServiceError(
			inference.CauseIncompleteResponse,
			fmt.Sprintf("empty response content: %s", response.String()),
			nil,
		)
	}
	slog.Default().Debug("openai chat completion",
		"operation", operation,
		"model", requestBody.Model,
		"usage", responseBody.Usage,
	)
	return content, nil
}

// GenerateCardArt implements the inference.Client interface.
func (client *Client) GenerateCardArt(ctx context.Context, card tarot.Card) (string, error) {
	var result string
	if err := client.do(ctx, func() error {
		dataURL, err := client.generateCardArt(ctx, card)
		if err != nil {
			return err
		}
		result = dataURL
		return nil
	}); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) generateCardArt(ctx context.Context, card tarot.Card) (string, error) {
	if err := client.checkAPIKey(); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"A mystical Tarot card illustration of %q. Themes: %s. Rich symbolic imagery in an art-nouveau style, deep indigo and gold palette, ornate border, no text or lettering.",
		card.Name, strings.Join(card.UprightKeywords, ", "),
	)
	requestBody := ImageGenerationRequest{
		Model:          client.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1792",
		ResponseFormat: "b64_json",
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ImageGenerationResponse{}).
		Post("/images/generations")
	if err != nil {
		return "", classifyTransport(err, "card art")
	}
	if response.IsError() {
		return "", classifyStatus(response.StatusCode(), response.String(), "card art")
	}

	responseBody := response.Result().(*ImageGenerationResponse)
	if responseBody == nil || len(responseBody.Data) == 0 || responseBody.Data[0].B64JSON == "" {
		return "", inference.NewServiceError(
			inference.CauseIncompleteResponse,
			fmt.Sprintf("image generation returned no data: %s", response.String()),
			nil,
		)
	}
	slog.Default().Debug("openai image generation", "card", card.ID, "model", requestBody.Model)
	return "data:image/png;base64," + responseBody.Data[0].B64JSON, nil
}

// IdentifyCard implements the inference.Client interface.
func (client *Client) IdentifyCard(ctx context.Context, image []byte) (string, error) {
	var result string
	if err := client.do(ctx, func() error {
		name, err := client.identifyCard(ctx, image)
		if err != nil {
			return err
		}
		result = name
		return nil
	}); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) identifyCard(ctx context.Context, image []byte) (string, error) {
	if err := client.checkAPIKey(); err != nil {
		return "", err
	}

	requestBody := ChatCompletionRequest{
		Model: client.model,
		Messages: []Message{
			{
				Role: RoleUser,
				Content: []ContentPart{
					{
						Type: "text",
						Text: "Identify the primary Tarot card in this image. Respond with only the card's name (e.g., 'The Fool', 'Ten of Wands'). If no card is clearly identifiable, respond with 'Unknown'.",
					},
					{
						Type: "image_url",
						ImageURL: &ImageURL{
							URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
	}

	content, err := client.chatCompletion(ctx, requestBody, "card identification")
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(content), `"'`))
	if name == "" || strings.EqualFold(name, "unknown") {
		return "", nil
	}
	return name, nil
}
