package domain

import "strings"

// Slide describes one presentation page: its content plus a free-text
// layout hint steering the renderer's placement heuristics.
type Slide struct {
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	ImagePrompt string   `json:"image_prompt,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	LayoutHint  string   `json:"layout_hint,omitempty"`
}

// HasImage reports whether the slide carries image data or at least a
// request for one. The URL, when present, always wins over the prompt.
func (s Slide) HasImage() bool {
	return s.ImageURL != "" || s.ImagePrompt != ""
}

// Presentation is the unit produced by one generation request. It has no
// identity and is never persisted; it lives only inside a job result.
type Presentation struct {
	Slides []Slide `json:"slides"`
}

// LayoutIntent is the closed set of layouts the renderer knows how to
// draw. Free-text hints collapse onto it through ClassifyLayout, so the
// rendering code switches on a finite set instead of ad-hoc substring
// checks.
type LayoutIntent int

const (
	// LayoutText is the default: left-aligned title, full-width body.
	LayoutText LayoutIntent = iota
	// LayoutCover centers the title and reserves the image region.
	LayoutCover
	// LayoutIllustrated keeps the left title but reserves the image region.
	LayoutIllustrated
	// LayoutDataHeavy renders like LayoutIllustrated; kept distinct so the
	// hint survives a classify/render round trip.
	LayoutDataHeavy
)

// ClassifyLayout maps a free-text layout hint onto a LayoutIntent.
// Matching is case-insensitive substring containment; unrecognized hints
// (including the empty string) fall back to LayoutText.
func ClassifyLayout(hint string) LayoutIntent {
	h := strings.ToLower(hint)
	switch {
	case strings.Contains(h, "center"):
		return LayoutCover
	case strings.Contains(h, "data-heavy"):
		return LayoutDataHeavy
	case strings.Contains(h, "image"), strings.Contains(h, "illustrated"):
		return LayoutIllustrated
	default:
		return LayoutText
	}
}

// CenteredTitle reports whether the intent asks for a centered title.
func (l LayoutIntent) CenteredTitle() bool {
	return l == LayoutCover
}

// ImageEligible reports whether the intent reserves the right-hand image
// region. The region is only drawn when the slide also carries image
// data or a prompt.
func (l LayoutIntent) ImageEligible() bool {
	return l != LayoutText
}
