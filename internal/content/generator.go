// Package content turns a generation request into a Presentation. The
// external model is best-effort: every failure path degrades to the
// deterministic mock so callers never see an error.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"deckgen/internal/domain"
)

// Request carries the five inputs of one generation call. All fields
// are validated by the HTTP layer before they reach the generator.
type Request struct {
	Title      string
	Audience   string
	SlideCount int
	Style      string
	Language   string
}

// TextModel generates raw model text from a system/user prompt pair.
type TextModel interface {
	Configured() bool
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageModel produces a base64 JPEG payload for a prompt, or "" when no
// image could be produced without that being an error.
type ImageModel interface {
	Configured() bool
	GenerateBase64(ctx context.Context, prompt string) (string, error)
}

// Generator orchestrates content generation and per-slide image
// enrichment.
type Generator struct {
	text   TextModel
	image  ImageModel
	logger zerolog.Logger
}

// NewGenerator wires the generator. Both models may be nil; a nil or
// unconfigured text model means permanent mock mode.
func NewGenerator(text TextModel, image ImageModel, logger zerolog.Logger) *Generator {
	return &Generator{text: text, image: image, logger: logger}
}

type modelPayload struct {
	Slides []domain.Slide `json:"slides"`
}

// Generate returns a Presentation for the request, always. Model or
// parse failures are logged and replaced by the deterministic mock.
func (g *Generator) Generate(ctx context.Context, req Request) *domain.Presentation {
	if g.text == nil || !g.text.Configured() {
		g.logger.Info().Msg("text model not configured, returning mock presentation")
		return MockPresentation(req.Title, req.SlideCount)
	}

	raw, err := g.text.GenerateText(ctx, systemPrompt(), userPrompt(req))
	if err != nil {
		g.logger.Warn().Err(err).Msg("model call failed, returning mock presentation")
		return MockPresentation(req.Title, req.SlideCount)
	}

	parsed, err := parsePresentation(raw)
	if err != nil {
		g.logger.Warn().Err(err).Msg("model output unusable, returning mock presentation")
		return MockPresentation(req.Title, req.SlideCount)
	}

	g.enrichImages(ctx, parsed)
	return parsed
}

// enrichImages attaches a data URI to every slide that asks for an
// image and has none yet. Enrichment never fails the presentation: a
// slide whose image cannot be produced simply stays without one.
func (g *Generator) enrichImages(ctx context.Context, p *domain.Presentation) {
	if g.image == nil || !g.image.Configured() {
		return
	}
	for i := range p.Slides {
		s := &p.Slides[i]
		if s.ImagePrompt == "" || s.ImageURL != "" {
			continue
		}
		payload, err := g.image.GenerateBase64(ctx, s.ImagePrompt)
		if err != nil {
			g.logger.Warn().Err(err).Int("slide", i).Msg("image generation failed, slide stays without image")
			continue
		}
		if payload == "" {
			continue
		}
		s.ImageURL = "data:image/jpeg;base64," + payload
	}
}

func parsePresentation(raw string) (*domain.Presentation, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty model output")
	}
	var payload modelPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, err
	}
	if payload.Slides == nil {
		return nil, fmt.Errorf("model output has no slides array")
	}
	return &domain.Presentation{Slides: payload.Slides}, nil
}

func systemPrompt() string {
	return "You are an expert presentation generator. Produce a clear structure with a title, " +
		"3-5 bullets per slide, speaker notes of 2-4 sentences, and a short image suggestion per slide. " +
		"Keep to the requested language, avoid jargon, and do not exceed 60 words per slide. " +
		"Deliver strict JSON with keys: slides[] where each slide has title, bullets[], notes, " +
		"image_prompt, layout_hint. Do not include any character before or after the JSON."
}

func userPrompt(req Request) string {
	return fmt.Sprintf(
		"Generate %d slides for the title %q aimed at an audience of %s. Style: %s. Language: %s. "+
			"Include one slide with metrics (use fictitious values). Deliver JSON.",
		req.SlideCount, req.Title, req.Audience, req.Style, req.Language,
	)
}

// extractJSONFragment strips Markdown code fences and any stray prose
// around the outermost JSON value.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
