package wardrobe

// Variant identifies an extraction entry point. Each variant has its own
// prompt template, enumeration wording and failure contract.
type Variant string

// Variant constants.
const (
	VariantPage  Variant = "page"
	VariantImage Variant = "image"
)

// Validate returns an error if the variant is unknown.
func (v Variant) Validate() error {
	switch v {
	case VariantPage, VariantImage:
		return nil
	}
	return Errorf(EINVALID, "unknown variant %q", string(v))
}

// Record keys as they appear in the JSON exchanged with the model.
const (
	KeyIsClothing = "isClothing"
	KeyName       = "name"
	KeyBrand      = "brand"
	KeyType       = "type"
	KeyPrice      = "price"
	KeyOccasion   = "occasion"
	KeyStyle      = "style"
	KeyFit        = "fit"
	KeyColor      = "color"
	KeyMaterial   = "material"
	KeySeason     = "season"
	KeySourceURL  = "sourceUrl"
)

var pageKeys = []string{
	KeyIsClothing, KeyName, KeyBrand, KeyType, KeyPrice, KeyOccasion,
	KeyStyle, KeyFit, KeyColor, KeyMaterial, KeySeason, KeySourceURL,
}

var imageKeys = []string{
	KeyIsClothing, KeyName, KeyBrand, KeyType, KeyOccasion,
	KeyStyle, KeyFit, KeyColor, KeyMaterial, KeySeason,
}

// Keys returns the canonical key set of the variant in serialization order.
func (v Variant) Keys() []string {
	if v == VariantImage {
		return append([]string(nil), imageKeys...)
	}
	return append([]string(nil), pageKeys...)
}

// Page variant enumerations.
var (
	PageTypes     = []string{"T-shirt", "Jacket", "Pants", "Shoes", "Hat", "Sweater", "Shorts", "Dress", "Skirt"}
	PageOccasions = []string{"Casual", "Formal", "Party", "Athletic"}
	PageStyles    = []string{"Streetwear", "Minimalist", "Old Money", "Y2K", "Preppy"}
	PageFits      = []string{"slim", "regular", "oversized", "baggy", "crop", "skinny", "tapered"}
	PageColors    = []string{"Black", "White", "Red", "Blue", "Green", "Yellow", "Gray", "Brown", "Purple", "Pink"}
	PageMaterials = []string{"cotton", "linen", "denim", "leather", "knit", "polyester"}
	PageSeasons   = []string{"spring", "summer", "fall", "winter"}
)

// Image variant enumerations, worded the way the wardrobe filters match
// them. There is no baggy fit; loose garments are labeled "Oversized Fit".
var (
	ImageTypes     = []string{"T-shirt", "Jacket", "Pants", "Shoes", "Hat", "Sweater", "Shorts", "Dress", "Skirt"}
	ImageOccasions = []string{"Casual", "Formal", "Party", "Athletic"}
	ImageStyles    = []string{"Streetwear", "Minimalist", "Old Money", "Y2K", "Preppy"}
	ImageFits      = []string{"Slim Fit", "Regular Fit", "Oversized Fit", "Crop Fit", "Skinny", "Tapered"}
	ImageColors    = []string{"Black", "White", "Red", "Blue", "Green", "Yellow", "Gray", "Brown", "Purple", "Pink"}
	ImageMaterials = []string{"Cotton", "Linen", "Denim", "Leather", "Knit", "Polyester"}
	ImageSeasons   = []string{"Spring", "Summer", "Fall", "Winter"}
)

// Enumeration returns the allowed values for an enumerated key of the
// variant, or nil if the key is free-form.
func Enumeration(v Variant, key string) []string {
	page := v != VariantImage
	switch key {
	case KeyType:
		return pick(page, PageTypes, ImageTypes)
	case KeyOccasion:
		return pick(page, PageOccasions, ImageOccasions)
	case KeyStyle:
		return pick(page, PageStyles, ImageStyles)
	case KeyFit:
		return pick(page, PageFits, ImageFits)
	case KeyColor:
		return pick(page, PageColors, ImageColors)
	case KeyMaterial:
		return pick(page, PageMaterials, ImageMaterials)
	case KeySeason:
		return pick(page, PageSeasons, ImageSeasons)
	}
	return nil
}

// EnumeratedKeys lists the keys whose values are drawn from an enumeration.
var EnumeratedKeys = []string{KeyType, KeyOccasion, KeyStyle, KeyFit, KeyColor, KeyMaterial, KeySeason}

func pick(page bool, a, b []string) []string {
	if page {
		return a
	}
	return b
}
