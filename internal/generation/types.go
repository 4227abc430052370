package generation

import "github.com/forless-ai/forless-backend/internal/websites/domain"

// BrandOption is one generated brand identity candidate.
type BrandOption struct {
	Name   string `json:"name"`
	Slogan string `json:"slogan"`
}

// BrandData is the brand document stored on a project.
type BrandData struct {
	Name    string   `json:"name"`
	Slogan  string   `json:"slogan"`
	Palette *Palette `json:"palette,omitempty"`
	Font    *Font    `json:"font,omitempty"`
}

type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type Font struct {
	ID  string `json:"id"`
	CSS string `json:"css"`
}

// createAndGenerateOutput is the combined shape the model returns for the
// one-shot project creation flow.
type createAndGenerateOutput struct {
	Brand   BrandOption        `json:"brand"`
	Website domain.WebsiteData `json:"website"`
}
