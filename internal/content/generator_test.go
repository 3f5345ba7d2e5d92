package content

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeText struct {
	configured bool
	text       string
	err        error
}

func (f fakeText) Configured() bool { return f.configured }

func (f fakeText) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f.text, f.err
}

type fakeImage struct {
	configured bool
	payload    string
	err        error
	calls      int
}

func (f *fakeImage) Configured() bool { return f.configured }

func (f *fakeImage) GenerateBase64(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.payload, f.err
}

func testRequest() Request {
	return Request{Title: "Q3 Review", Audience: "execs", SlideCount: 5, Style: "corporate", Language: "en"}
}

func TestGenerateWithoutTextModelReturnsMock(t *testing.T) {
	g := NewGenerator(nil, nil, zerolog.Nop())
	p := g.Generate(context.Background(), testRequest())
	if !reflect.DeepEqual(p, MockPresentation("Q3 Review", 5)) {
		t.Fatal("expected the deterministic mock presentation")
	}
}

func TestGenerateUnconfiguredModelReturnsMock(t *testing.T) {
	g := NewGenerator(fakeText{configured: false}, nil, zerolog.Nop())
	p := g.Generate(context.Background(), testRequest())
	if len(p.Slides) != 5 {
		t.Fatalf("slide count = %d, want 5", len(p.Slides))
	}
}

func TestGenerateModelErrorReturnsMock(t *testing.T) {
	g := NewGenerator(fakeText{configured: true, err: errors.New("boom")}, nil, zerolog.Nop())
	p := g.Generate(context.Background(), testRequest())
	if !reflect.DeepEqual(p, MockPresentation("Q3 Review", 5)) {
		t.Fatal("expected the deterministic mock presentation")
	}
}

func TestGenerateMalformedOutputReturnsMock(t *testing.T) {
	for _, raw := range []string{"not json at all", `{"foo":1}`, "", "```json\n```"} {
		g := NewGenerator(fakeText{configured: true, text: raw}, nil, zerolog.Nop())
		p := g.Generate(context.Background(), testRequest())
		if !reflect.DeepEqual(p, MockPresentation("Q3 Review", 5)) {
			t.Fatalf("raw %q: expected the deterministic mock presentation", raw)
		}
	}
}

func TestGenerateParsesFencedJSON(t *testing.T) {
	raw := "```json\n{\"slides\":[{\"title\":\"One\",\"bullets\":[\"a\"],\"layout_hint\":\"image\",\"image_prompt\":\"a lighthouse\"}]}\n```"
	g := NewGenerator(fakeText{configured: true, text: raw}, nil, zerolog.Nop())

	p := g.Generate(context.Background(), testRequest())
	if len(p.Slides) != 1 {
		t.Fatalf("slide count = %d, want 1", len(p.Slides))
	}
	if p.Slides[0].Title != "One" {
		t.Fatalf("title = %q, want %q", p.Slides[0].Title, "One")
	}
}

func TestGenerateEnrichesImagePrompts(t *testing.T) {
	raw := `{"slides":[
		{"title":"A","image_prompt":"a lighthouse"},
		{"title":"B","image_prompt":"a ship","image_url":"data:image/jpeg;base64,already"},
		{"title":"C"}
	]}`
	image := &fakeImage{configured: true, payload: "Zm9v"}
	g := NewGenerator(fakeText{configured: true, text: raw}, image, zerolog.Nop())

	p := g.Generate(context.Background(), testRequest())
	if got := p.Slides[0].ImageURL; !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Fatalf("slide A image url = %q, want a data URI", got)
	}
	if got := p.Slides[1].ImageURL; got != "data:image/jpeg;base64,already" {
		t.Fatalf("slide B image url = %q, should be untouched", got)
	}
	if p.Slides[2].ImageURL != "" {
		t.Fatal("slide C should stay without an image")
	}
	if image.calls != 1 {
		t.Fatalf("image model calls = %d, want 1", image.calls)
	}
}

func TestGenerateSurvivesEnrichmentErrors(t *testing.T) {
	raw := `{"slides":[{"title":"A","image_prompt":"a lighthouse"}]}`
	image := &fakeImage{configured: true, err: errors.New("boom")}
	g := NewGenerator(fakeText{configured: true, text: raw}, image, zerolog.Nop())

	p := g.Generate(context.Background(), testRequest())
	if len(p.Slides) != 1 {
		t.Fatalf("slide count = %d, want 1", len(p.Slides))
	}
	if p.Slides[0].ImageURL != "" {
		t.Fatal("failed enrichment should leave the slide without an image")
	}
}

func TestGenerateAcceptsEmptySlidesArray(t *testing.T) {
	g := NewGenerator(fakeText{configured: true, text: `{"slides":[]}`}, nil, zerolog.Nop())
	p := g.Generate(context.Background(), testRequest())
	if len(p.Slides) != 0 {
		t.Fatalf("slide count = %d, want 0 (model explicitly returned none)", len(p.Slides))
	}
}

func TestExtractJSONFragment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced upper", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Here you go:\n{\"a\":1}\nEnjoy.", `{"a":1}`},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		if got := extractJSONFragment(tt.raw); got != tt.want {
			t.Fatalf("%s: extractJSONFragment = %q, want %q", tt.name, got, tt.want)
		}
	}
}
