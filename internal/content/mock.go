package content

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"deckgen/internal/domain"
)

const defaultDeckTitle = "untitled deck"

// MockPresentation builds the deterministic fallback deck: a cover
// slide, numbered placeholder slides, and a closing metrics slide with
// illustrative KPI values. It is a pure function of title and
// slideCount, does no I/O, and always yields exactly slideCount slides
// (minimum one).
func MockPresentation(title string, slideCount int) *domain.Presentation {
	if slideCount < 1 {
		slideCount = 1
	}
	caser := cases.Title(language.Und)

	coverTitle := title
	if coverTitle == "" {
		coverTitle = defaultDeckTitle
	}
	slides := make([]domain.Slide, 0, slideCount)
	slides = append(slides, domain.Slide{
		Title:       caser.String(coverTitle),
		Bullets:     []string{coverTitle, "Executive summary", "Founding team"},
		Notes:       "Brief introduction: name, mission, and the goal of the meeting.",
		ImagePrompt: "clean professional cover image",
		LayoutHint:  "center-title",
	})

	for i := 1; i < slideCount-1; i++ {
		slides = append(slides, domain.Slide{
			Title: fmt.Sprintf("Slide %d", i+1),
			Bullets: []string{
				fmt.Sprintf("Key point %d.1", i+1),
				fmt.Sprintf("Key point %d.2", i+1),
				fmt.Sprintf("Key point %d.3", i+1),
			},
			Notes:       fmt.Sprintf("Speaker notes for slide %d", i+1),
			ImagePrompt: fmt.Sprintf("suggested image for slide %d", i+1),
			LayoutHint:  "text-left",
		})
	}

	if slideCount > 1 {
		slides = append(slides, metricsSlide())
	}

	return &domain.Presentation{Slides: slides}
}

func metricsSlide() domain.Slide {
	return domain.Slide{
		Title: "Key metrics",
		Bullets: []string{
			"Active users: 12,400 (+18% vs Q2)",
			"30-day retention: 42%",
			"ARPU: $3.40",
		},
		Notes:       "Highlight growth and briefly explain what drove retention.",
		ImagePrompt: "KPI card with a small upward arrow icon",
		LayoutHint:  "data-heavy",
	}
}
