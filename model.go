package wardrobe

import "context"

// InlineImage is an image attached to a prompt.
type InlineImage struct {
	Data     []byte
	MIMEType string
}

// Prompt is the payload sent to a generative model: instruction text and,
// for the image variant, a single inline image.
type Prompt struct {
	Variant Variant
	Text    string
	Image   *InlineImage
}

// Size returns the number of payload bytes in the prompt.
func (p *Prompt) Size() int {
	n := len(p.Text)
	if p.Image != nil {
		n += len(p.Image.Data)
	}
	return n
}

// Model invokes an external generative model.
//
// Implementations make exactly one model call per Generate and do not retry.
// Failures are reported as EMODEL errors.
type Model interface {
	// Generate sends the prompt and returns the model's raw text reply.
	Generate(ctx context.Context, prompt *Prompt) (string, error)
}
