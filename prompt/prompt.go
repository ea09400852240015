// Package prompt renders the instruction text sent to the model for each
// extraction variant. Rendering is a pure function of its inputs.
package prompt

import (
	"fmt"
	"strings"

	"github.com/fwojciec/wardrobe"
)

// Page returns the prompt for extracting a record from product page HTML.
// The HTML is embedded verbatim; no truncation is performed.
func Page(html string) *wardrobe.Prompt {
	var sb strings.Builder
	sb.WriteString(`You are a product metadata extractor for fashion e-commerce.

From the provided HTML, return only a pure JSON object in the following format:

{
"isClothing": boolean,
"name": "...",
"brand": "...",
"type": "...",
"price": "...",
"occasion": "...",
"style": "...",
"fit": "...",
"color": "...",
"material": "...",
"season": "...",
"sourceUrl": "..."
}

Guidelines:
- Analyze the HTML to identify a single clothing item if present.
- Set "isClothing" to true if a single clothing item is clearly identified, otherwise set to false.
- If "isClothing" is true, fill in the following fields based on the clothing item:
  - "name": a short descriptive name,
  - "brand": guessed brand name (e.g. "Nike", "Adidas"), or null if unknown
`)
	fmt.Fprintf(&sb, "  - \"type\": one of %s, or null.\n", list(wardrobe.PageTypes))
	sb.WriteString("  - \"price\": numeric string or number only, e.g. \"39.99\" or 39.99. Null if not found.\n")
	fmt.Fprintf(&sb, "  - \"occasion\": one of %s, or null.\n", list(wardrobe.PageOccasions))
	fmt.Fprintf(&sb, "  - \"style\": one of %s, or null.\n", list(wardrobe.PageStyles))
	fmt.Fprintf(&sb, "  - \"fit\": one of %s\n", list(wardrobe.PageFits))
	fmt.Fprintf(&sb, "  - \"color\": one of basic colors like %s\n", list(wardrobe.PageColors))
	fmt.Fprintf(&sb, "  - \"material\": one of %s\n", list(wardrobe.PageMaterials))
	fmt.Fprintf(&sb, "  - \"season\": one of %s\n", list(wardrobe.PageSeasons))
	sb.WriteString(`  - "sourceUrl": the URL of the product page.
- If "isClothing" is false, all other fields should be null.
- Only return the specified JSON object. Do not include any other text, explanations, or fields.

**IMPORTANT**: You MUST provide a value for every field if "isClothing" is true (except 'price' if not found).
If you are unsure about a field, make an educated guess based on the available information. NEVER use null or empty strings for any field except price.

**CRITICAL FIELD GUIDANCE**:
- For "style": If unclear, default to "Streetwear" or make a reasonable guess from the 5 options based on brand/aesthetic
- For "fit": If unclear, default to "regular" or guess based on clothing type (e.g., "oversized" for hoodies)
- For "material": Make educated guesses based on clothing type (e.g., "cotton" for t-shirts, "denim" for jeans)
- For "season": Consider the clothing type and weight (e.g., "summer" for t-shirts, "fall" for jackets)
- For "occasion": Default to "Casual" unless clearly formal/athletic wear
- For "color": Identify primary color even if pattern exists

HTML:
`)
	sb.WriteString("```html\n")
	sb.WriteString(html)
	sb.WriteString("\n```")

	return &wardrobe.Prompt{
		Variant: wardrobe.VariantPage,
		Text:    sb.String(),
	}
}

// Image returns the prompt for extracting a record from a single garment photo.
func Image(data []byte, mimeType string) *wardrobe.Prompt {
	var sb strings.Builder
	sb.WriteString(`You are a fashion labeling assistant for a wardrobe management app.

Look at the attached image and decide whether it shows a single clothing item.

If it does, return only a JSON object in the following format:

{
"isClothing": true,
"name": "...",
"brand": "...",
"type": "...",
"occasion": "...",
"style": "...",
"fit": "...",
"color": "...",
"material": "...",
"season": "..."
}

Field values:
- "name": a short descriptive name (e.g. "Black Graphic Hoodie", "Slim Fit Jeans")
- "brand": the brand if a logo or label is visible, otherwise your best guess
`)
	fmt.Fprintf(&sb, "- \"type\": one of %s\n", list(wardrobe.ImageTypes))
	fmt.Fprintf(&sb, "- \"occasion\": one of %s\n", list(wardrobe.ImageOccasions))
	fmt.Fprintf(&sb, "- \"style\": one of %s\n", list(wardrobe.ImageStyles))
	fmt.Fprintf(&sb, "- \"fit\": one of %s (use \"Oversized Fit\" for baggy garments)\n", list(wardrobe.ImageFits))
	fmt.Fprintf(&sb, "- \"color\": the primary color, one of %s\n", list(wardrobe.ImageColors))
	fmt.Fprintf(&sb, "- \"material\": one of %s\n", list(wardrobe.ImageMaterials))
	fmt.Fprintf(&sb, "- \"season\": one of %s\n", list(wardrobe.ImageSeasons))
	sb.WriteString(`
Provide a value for every field. If you are unsure, make a reasonable guess from the visual information.

If the image does not show a clothing item, return exactly:

{"isClothing": false}

Return ONLY the JSON object, no explanations.`)

	return &wardrobe.Prompt{
		Variant: wardrobe.VariantImage,
		Text:    sb.String(),
		Image: &wardrobe.InlineImage{
			Data:     data,
			MIMEType: mimeType,
		},
	}
}

// list renders values as a JSON-style array of strings.
func list(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
