// Package catalog owns the prompt library: prompts, the categories they are
// grouped into, and the invariants that tie the two together.
//
// A Store is created once at process start and handed to its consumers. It is
// safe for concurrent use; every mutation runs under a single write lock so
// id uniqueness and category references hold across concurrent requests.
package catalog

import "time"

// Category is a named grouping of prompts. ID is derived from Name when the
// category is created and never changes afterwards.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Prompt is a catalog entry describing a text-to-image recipe plus optional
// reference media. Each *URL attachment field holds either an external URL or
// an inline data URL.
type Prompt struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	PromptText        string    `json:"promptText"`
	CategoryID        string    `json:"categoryId"`
	ImageURL          string    `json:"imageUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	LogoURL           string    `json:"logoUrl,omitempty"`
	ProductImageURL   string    `json:"productImageUrl,omitempty"`
	HumanPhotoURL     string    `json:"humanPhotoUrl,omitempty"`
	ReferenceImageURL string    `json:"referenceImageUrl,omitempty"`
	AssetURL          string    `json:"assetUrl,omitempty"`
}

// PromptInput carries the caller-controlled fields of a Prompt. The store
// assigns ID and CreatedAt.
type PromptInput struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	PromptText        string `json:"promptText"`
	CategoryID        string `json:"categoryId"`
	ImageURL          string `json:"imageUrl,omitempty"`
	LogoURL           string `json:"logoUrl,omitempty"`
	ProductImageURL   string `json:"productImageUrl,omitempty"`
	HumanPhotoURL     string `json:"humanPhotoUrl,omitempty"`
	ReferenceImageURL string `json:"referenceImageUrl,omitempty"`
	AssetURL          string `json:"assetUrl,omitempty"`
}

// Input returns the caller-controlled fields of p.
func (p Prompt) Input() PromptInput {
	return PromptInput{
		Title:             p.Title,
		Description:       p.Description,
		PromptText:        p.PromptText,
		CategoryID:        p.CategoryID,
		ImageURL:          p.ImageURL,
		LogoURL:           p.LogoURL,
		ProductImageURL:   p.ProductImageURL,
		HumanPhotoURL:     p.HumanPhotoURL,
		ReferenceImageURL: p.ReferenceImageURL,
		AssetURL:          p.AssetURL,
	}
}

// withIdentity builds a Prompt from the input and the store-assigned fields.
func (in PromptInput) withIdentity(id string, createdAt time.Time) Prompt {
	return Prompt{
		ID:                id,
		Title:             in.Title,
		Description:       in.Description,
		PromptText:        in.PromptText,
		CategoryID:        in.CategoryID,
		ImageURL:          in.ImageURL,
		CreatedAt:         createdAt,
		LogoURL:           in.LogoURL,
		ProductImageURL:   in.ProductImageURL,
		HumanPhotoURL:     in.HumanPhotoURL,
		ReferenceImageURL: in.ReferenceImageURL,
		AssetURL:          in.AssetURL,
	}
}

// Attachment is one labelled reference-media slot of a prompt.
type Attachment struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Attachments returns the populated reference-media slots in display order:
// logo, product image, human photo, reference image, asset.
func (p Prompt) Attachments() []Attachment {
	slots := []Attachment{
		{Label: "Logo", URL: p.LogoURL},
		{Label: "Product Image", URL: p.ProductImageURL},
		{Label: "Human Photo", URL: p.HumanPhotoURL},
		{Label: "Reference Image", URL: p.ReferenceImageURL},
		{Label: "Asset", URL: p.AssetURL},
	}
	out := make([]Attachment, 0, len(slots))
	for _, s := range slots {
		if s.URL != "" {
			out = append(out, s)
		}
	}
	return out
}

// Filter narrows a prompt listing. Zero values match everything.
type Filter struct {
	// Query is matched case-insensitively against title and description.
	Query string
	// CategoryID restricts results to one category.
	CategoryID string
}

// Stats summarises the catalog for the admin dashboard.
type Stats struct {
	Prompts    int `json:"prompts"`
	Categories int `json:"categories"`
}
