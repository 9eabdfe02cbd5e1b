package vertex

import (
	"context"
	"fmt"
	"strings"

	"alexandria-server/internal/domain"

	"cloud.google.com/go/vertexai/genai"
)

// Client serves prompts through Vertex AI using application default
// credentials.
type Client struct {
	genaiClient *genai.Client
	model       string
	logger      domain.Logger
}

func NewClient(ctx context.Context, projectID, location, model string, logger domain.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}
	logger.Info("Vertex AI client initialized", "project", projectID, "location", location, "model", model)
	return &Client{genaiClient: client, model: model, logger: logger}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	model := c.genaiClient.GenerativeModel(c.model)
	if opts.Temperature != nil {
		model.SetTemperature(*opts.Temperature)
	}
	if opts.JSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("vertex generate: %w", err)
	}
	return responseText(resp)
}

func (c *Client) Close() error {
	return c.genaiClient.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates", domain.ErrInvalidModelResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}
