package recognition

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/restocked/stocklog/internal/domain/models"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 2048
)

// Recognizer extracts structured procurement data from a receipt photo.
type Recognizer interface {
	Recognize(ctx context.Context, hint string, image models.ReceiptImage) (*models.ParseResult, error)
}

type anthropicRecognizer struct {
	httpClient *resty.Client
}

// NewClient creates a Recognizer backed by the Anthropic vision API.
func NewClient(apiKey string) Recognizer {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &anthropicRecognizer{httpClient: client}
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const systemPrompt = `You read photographed paper receipts from food suppliers (mostly Chinese) and extract structured procurement data.

RULES:
- Output ONLY a JSON object, no prose, with this structure:
  {
    "supplier": "supplier name or empty string",
    "notes": "remarks printed on the receipt, or empty string",
    "items": [
      {"name": "...", "specification": "...", "quantity": 0, "unit": "...", "unitPrice": 0, "total": 0}
    ]
  }
- Keep item order as printed on the receipt.
- quantity, unitPrice and total are numbers; use 0 when unreadable.
- When total is missing, compute quantity * unitPrice.
- Omit summary lines (总计, 合计) from items; they are not goods.
- Leave supplier empty rather than guessing.`

// Recognize sends the photo to the vision model and parses its JSON reply.
func (c *anthropicRecognizer) Recognize(ctx context.Context, hint string, image models.ReceiptImage) (*models.ParseResult, error) {
	userText := "Extract the procurement data from this receipt."
	if hint != "" {
		userText = fmt.Sprintf("%s Context from the worker: %s", userText, hint)
	}

	userMsg := message{
		Role: "user",
		Content: []contentBlock{
			{
				Type: "image",
				Source: &imageSource{
					Type:      "base64",
					MediaType: image.MimeType,
					Data:      image.Data,
				},
			},
			{Type: "text", Text: userText},
		},
	}

	// Prefill the assistant response to force JSON output
	prefill := message{Role: "assistant", Content: []contentBlock{{Type: "text", Text: "{"}}}

	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []message{userMsg, prefill},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return nil, fmt.Errorf("recognition api call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recognition api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return nil, fmt.Errorf("empty response from recognition model")
	}

	// Reconstruct the full JSON since we prefilled the opening brace
	responseText := "{" + respBody.Content[0].Text

	result, err := decodeResult(responseText)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// decodeResult parses the model reply, tolerating markdown code fences the
// model occasionally wraps JSON in.
func decodeResult(text string) (*models.ParseResult, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	var result models.ParseResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recognition response: %w. Response was: %s", err, text)
	}

	// The model sometimes leaves totals at 0 while qty and price are present.
	for i, item := range result.Items {
		if item.Total == 0 && item.Quantity != 0 && item.UnitPrice != 0 {
			result.Items[i].Total = item.Quantity * item.UnitPrice
		}
	}

	return &result, nil
}
