package gemini

import (
	"context"

	"github.com/fwojciec/wardrobe"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature keeps replies close to the requested JSON shape.
const DefaultTemperature = 0.2

// Ensure Model implements wardrobe.Model at compile time.
var _ wardrobe.Model = (*Model)(nil)

// Model implements wardrobe.Model using Google Gemini.
// It makes exactly one GenerateContent call per Generate.
type Model struct {
	client      *genai.Client
	name        string
	temperature float32
}

// NewModel creates a Model that sends prompts to the named Gemini model.
func NewModel(client *genai.Client, name string) *Model {
	if name == "" {
		name = DefaultModel
	}
	return &Model{client: client, name: name, temperature: DefaultTemperature}
}

// NewClient creates a Gemini API client from an API key. The key is
// supplied by the caller; nothing is read from the environment here.
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*genai.Client, error) {
	if apiKey == "" {
		return nil, wardrobe.Errorf(wardrobe.EINVALID, "gemini API key required")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, wardrobe.WrapError(wardrobe.EINVALID, err, "create gemini client")
	}
	return client, nil
}

// ClientOption configures the Gemini client.
type ClientOption func(*genai.ClientConfig)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

// Name returns the Gemini model name.
func (m *Model) Name() string {
	return m.name
}

// Generate sends the prompt and returns the text of the reply. A reply
// with candidates but no text yields an empty string and no error.
func (m *Model) Generate(ctx context.Context, prompt *wardrobe.Prompt) (string, error) {
	if prompt == nil {
		return "", wardrobe.Errorf(wardrobe.EINVALID, "prompt required")
	}

	result, err := m.client.Models.GenerateContent(ctx, m.name, BuildContents(prompt), BuildConfig(m.temperature))
	if err != nil {
		return "", wardrobe.WrapError(wardrobe.EMODEL, err, "gemini generate content")
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", wardrobe.Errorf(wardrobe.EMODEL, "gemini returned no candidates")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
}

// BuildContents converts a prompt into a single user turn: the instruction
// text followed by the inline image, if any. The SDK base64-encodes image
// bytes on the wire.
func BuildContents(prompt *wardrobe.Prompt) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(prompt.Text)}
	if prompt.Image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: prompt.Image.MIMEType,
				Data:     prompt.Image.Data,
			},
		})
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}
