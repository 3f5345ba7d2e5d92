package content

import (
	"reflect"
	"testing"
)

func TestMockPresentationShape(t *testing.T) {
	p := MockPresentation("Q3 Review", 5)

	if len(p.Slides) != 5 {
		t.Fatalf("slide count = %d, want 5", len(p.Slides))
	}
	cover := p.Slides[0]
	if cover.LayoutHint != "center-title" {
		t.Fatalf("cover layout hint = %q, want %q", cover.LayoutHint, "center-title")
	}
	if cover.Title != "Q3 Review" {
		t.Fatalf("cover title = %q, want %q", cover.Title, "Q3 Review")
	}
	last := p.Slides[len(p.Slides)-1]
	if last.Title != "Key metrics" {
		t.Fatalf("last slide title = %q, want %q", last.Title, "Key metrics")
	}
	if last.LayoutHint != "data-heavy" {
		t.Fatalf("last slide layout hint = %q, want %q", last.LayoutHint, "data-heavy")
	}
	if len(last.Bullets) != 3 {
		t.Fatalf("metrics bullets = %d, want 3", len(last.Bullets))
	}
	for i, s := range p.Slides[1 : len(p.Slides)-1] {
		if len(s.Bullets) != 3 {
			t.Fatalf("placeholder slide %d bullets = %d, want 3", i+1, len(s.Bullets))
		}
	}
}

func TestMockPresentationDeterministic(t *testing.T) {
	a := MockPresentation("Launch Plan", 7)
	b := MockPresentation("Launch Plan", 7)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different presentations")
	}
}

func TestMockPresentationDefaultTitle(t *testing.T) {
	p := MockPresentation("", 3)
	if p.Slides[0].Title == "" {
		t.Fatal("cover title should never be empty")
	}
}

func TestMockPresentationDegenerateCounts(t *testing.T) {
	if got := len(MockPresentation("x", 1).Slides); got != 1 {
		t.Fatalf("count for 1 = %d, want 1", got)
	}
	if got := len(MockPresentation("x", 2).Slides); got != 2 {
		t.Fatalf("count for 2 = %d, want 2", got)
	}
	if got := len(MockPresentation("x", 0).Slides); got != 1 {
		t.Fatalf("count for 0 = %d, want 1", got)
	}
	two := MockPresentation("x", 2)
	if two.Slides[1].Title != "Key metrics" {
		t.Fatalf("second slide of a two-slide deck = %q, want the metrics slide", two.Slides[1].Title)
	}
}
