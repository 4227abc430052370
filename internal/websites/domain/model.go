package domain

// WebsiteData is the one-page site document the generator produces and the
// builder edits. The JSON shape is part of the client contract.
type WebsiteData struct {
	Type      string   `json:"type"`
	BrandName string   `json:"brandName"`
	Hero      Hero     `json:"hero"`
	About     About    `json:"about"`
	Features  Features `json:"features"`
	Offers    Offers   `json:"offers"`
	Contact   Contact  `json:"contact"`
	FinalCta  FinalCta `json:"finalCta"`
}

type Hero struct {
	Headline         string `json:"headline"`
	Subheadline      string `json:"subheadline"`
	PrimaryCta       string `json:"primaryCta"`
	PrimaryCtaLink   string `json:"primaryCtaLink"`
	SecondaryCta     string `json:"secondaryCta"`
	SecondaryCtaLink string `json:"secondaryCtaLink"`
	ImageQuery       string `json:"imageQuery"`
}

type About struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	ImageQuery string `json:"imageQuery"`
}

type Features struct {
	Title string        `json:"title"`
	Items []FeatureItem `json:"items"`
}

type FeatureItem struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

type Offers struct {
	Title string      `json:"title"`
	Items []OfferItem `json:"items"`
}

type OfferItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceLabel  string `json:"priceLabel"`
}

type Contact struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Whatsapp    string `json:"whatsapp"`
}

type FinalCta struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	ButtonLabel string `json:"buttonLabel"`
}
