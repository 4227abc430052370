package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/forless-ai/forless-backend/internal/projects"
	"github.com/forless-ai/forless-backend/internal/websites"
	"github.com/forless-ai/forless-backend/internal/websites/domain"
)

var (
	ErrRateLimited    = errors.New("generation rate limit exceeded")
	ErrBadModelOutput = errors.New("model returned invalid JSON")
	ErrMissingIdea    = errors.New("idea is required")
)

const systemWebsite = "You generate website JSON. Return ONLY strict JSON. No markdown. No explanation."
const systemBrand = "Generate brand options. Return STRICT JSON only. No markdown, no explanations."

// Completer is the AI text-generation collaborator.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service builds prompts, parses model output and persists generated content.
// One limiter guards all generation endpoints; the hosted API is the scarce
// resource, not the caller.
type Service struct {
	llm      Completer
	projects *projects.Repo
	websites *websites.Repo
	limiter  *rate.Limiter
	log      zerolog.Logger
}

func NewService(llm Completer, projectsRepo *projects.Repo, websitesRepo *websites.Repo, rps float64, burst int, log zerolog.Logger) *Service {
	return &Service{
		llm:      llm,
		projects: projectsRepo,
		websites: websitesRepo,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		log:      log.With().Str("component", "generation").Logger(),
	}
}

// GenerateBrandOptions returns three brand identity candidates for an idea.
func (s *Service) GenerateBrandOptions(ctx context.Context, idea string) ([]BrandOption, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrMissingIdea
	}
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	user := fmt.Sprintf(`Business idea: %s

Return JSON with this exact shape:
{
  "brands": [
    { "name": "...", "slogan": "..." },
    { "name": "...", "slogan": "..." },
    { "name": "...", "slogan": "..." }
  ]
}`, idea)

	text, err := s.llm.Complete(ctx, systemBrand, user)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Brands []BrandOption `json:"brands"`
	}
	if err := decodeStrictJSON(text, &parsed); err != nil || parsed.Brands == nil {
		s.log.Error().Str("raw", truncate(text, 400)).Msg("brand generation returned invalid JSON")
		return nil, ErrBadModelOutput
	}
	return parsed.Brands, nil
}

// GenerateWebsite produces a full website document for an idea, reflecting the
// brand when present.
func (s *Service) GenerateWebsite(ctx context.Context, idea, websiteType string, brand *BrandData) (*domain.WebsiteData, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrMissingIdea
	}
	if websiteType == "" {
		websiteType = "product"
	}
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	text, err := s.llm.Complete(ctx, systemWebsite, websitePrompt(idea, websiteType, brand))
	if err != nil {
		return nil, err
	}

	var parsed domain.WebsiteData
	if err := decodeStrictJSON(text, &parsed); err != nil || parsed.Hero == (domain.Hero{}) {
		s.log.Error().Str("raw", truncate(text, 400)).Msg("website generation returned invalid JSON")
		return nil, ErrBadModelOutput
	}
	parsed.Type = websiteType
	return &parsed, nil
}

// CreateAndGenerate creates a project and fills it with a generated brand and
// website in one flow, mirroring the dashboard's "new project" wizard.
func (s *Service) CreateAndGenerate(ctx context.Context, userDBID, name, idea, websiteType string) (publicID string, err error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return "", ErrMissingIdea
	}
	if websiteType == "" {
		websiteType = "product"
	}
	if !s.limiter.Allow() {
		return "", ErrRateLimited
	}

	text, err := s.llm.Complete(ctx, systemWebsite, createAndGeneratePrompt(idea, websiteType))
	if err != nil {
		return "", err
	}

	var out createAndGenerateOutput
	if err := decodeStrictJSON(text, &out); err != nil || out.Brand.Name == "" {
		s.log.Error().Str("raw", truncate(text, 400)).Msg("create-and-generate returned invalid JSON")
		return "", ErrBadModelOutput
	}

	// Server-owned fields the model is not trusted with.
	out.Website.Type = websiteType
	out.Website.BrandName = out.Brand.Name
	out.Website.Hero.Headline = out.Brand.Slogan
	out.Website.Hero.PrimaryCtaLink = "#"
	out.Website.Hero.SecondaryCtaLink = "#"

	p, err := s.projects.Create(ctx, userDBID, name, idea)
	if err != nil {
		return "", err
	}

	brandJSON, _ := json.Marshal(BrandData{Name: out.Brand.Name, Slogan: out.Brand.Slogan})
	if _, err := s.projects.SaveBrand(ctx, userDBID, p.PublicID, brandJSON); err != nil {
		return "", err
	}

	projectID, err := s.projects.InternalID(ctx, userDBID, p.PublicID)
	if err != nil {
		return "", err
	}

	websiteJSON, _ := json.Marshal(out.Website)
	if err := s.websites.Upsert(ctx, projectID, websiteJSON); err != nil {
		return "", err
	}

	s.log.Info().Str("project", p.PublicID).Msg("project created and generated")
	return p.PublicID, nil
}

func websitePrompt(idea, websiteType string, brand *BrandData) string {
	b := BrandData{}
	if brand != nil {
		b = *brand
	}
	palettePrimary, paletteSecondary, fontID := "", "", ""
	if b.Palette != nil {
		palettePrimary, paletteSecondary = b.Palette.Primary, b.Palette.Secondary
	}
	if b.Font != nil {
		fontID = b.Font.ID
	}

	return fmt.Sprintf(`Create a website data JSON for a simple one-page website.

Rules:
- Return a single JSON object that matches this structure exactly:
{
  "type": %q,
  "brandName": string,
  "hero": {
    "headline": string,
    "subheadline": string,
    "primaryCta": string,
    "primaryCtaLink": string,
    "secondaryCta": string,
    "secondaryCtaLink": string,
    "imageQuery": string
  },
  "about": { "title": string, "body": string, "imageQuery": string },
  "features": { "title": string, "items": [{ "label": string, "description": string }] },
  "offers": { "title": string, "items": [{ "name": string, "description": string, "priceLabel": string }] },
  "contact": {
    "title": string,
    "description": string,
    "email": string,
    "phone": string,
    "whatsapp": string
  },
  "finalCta": { "headline": string, "subheadline": string, "buttonLabel": string }
}

- Keep it realistic and short (no long paragraphs).
- Use this business idea: %s

Brand (if present) must be reflected:
- brand name: %s
- slogan: %s
- palette primary: %s
- palette secondary: %s
- font: %s

Links: use "#" for all links.
Email/phone/whatsapp: use placeholders like "hello@brand.com" / "+1 555..." if unknown.`,
		websiteType, idea, b.Name, b.Slogan, palettePrimary, paletteSecondary, fontID)
}

func createAndGeneratePrompt(idea, websiteType string) string {
	return fmt.Sprintf(`Create a brand and a website data JSON for a simple one-page website.

Return a single JSON object with this exact shape:
{
  "brand": { "name": string, "slogan": string },
  "website": {
    "type": %q,
    "hero": { "subheadline": string, "primaryCta": string, "secondaryCta": string, "imageQuery": string },
    "about": { "title": string, "body": string, "imageQuery": string },
    "features": { "title": string, "items": [{ "label": string, "description": string }] },
    "offers": { "title": string, "items": [{ "name": string, "description": string, "priceLabel": string }] },
    "contact": { "title": string, "description": string, "email": string, "phone": string, "whatsapp": string },
    "finalCta": { "headline": string, "subheadline": string, "buttonLabel": string }
  }
}

- Keep it realistic and short (no long paragraphs).
- Use this business idea: %s
- Email/phone/whatsapp: use placeholders like "hello@brand.com" / "+1 555..." if unknown.`,
		websiteType, idea)
}

// decodeStrictJSON tolerates a fenced code block around otherwise strict JSON,
// which some models emit despite instructions.
func decodeStrictJSON(text string, v any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return json.Unmarshal([]byte(strings.TrimSpace(text)), v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
