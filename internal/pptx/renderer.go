// Package pptx renders slide records into a PresentationML (.pptx)
// document. The document is assembled from OOXML parts and packed with
// the in-repo zip helper; no native office libraries are involved.
package pptx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"deckgen/internal/domain"
	"deckgen/pkg/zip"
)

// ErrNoSlides is returned when the input slide sequence is empty.
var ErrNoSlides = errors.New("pptx: no slides to render")

const (
	emuPerInch = 914400

	// Widescreen 16:9 canvas, 13.333 x 7.5 in.
	canvasWidthEMU  = 12192000
	canvasHeightEMU = 6858000
)

func emu(inches float64) int64 {
	return int64(inches * emuPerInch)
}

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// Render converts the slides into the bytes of a .pptx document.
func Render(slides []domain.Slide) ([]byte, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	overrides := []contentOverride{
		{"/ppt/presentation.xml", ctPresentation},
		{"/ppt/slideMasters/slideMaster1.xml", ctSlideMaster},
		{"/ppt/slideLayouts/slideLayout1.xml", ctSlideLayout},
		{"/ppt/notesMasters/notesMaster1.xml", ctNotesMaster},
		{"/ppt/theme/theme1.xml", ctTheme},
		{"/ppt/theme/theme2.xml", ctTheme},
	}

	presRels := []relationship{
		{"rId1", relTypeSlideMaster, "slideMasters/slideMaster1.xml"},
		{"rId2", relTypeNotesMaster, "notesMasters/notesMaster1.xml"},
	}

	parts := []zip.Part{
		{Name: "_rels/.rels", Data: relsXML([]relationship{
			{"rId1", relTypeOfficeDocument, "ppt/presentation.xml"},
		})},
		{Name: "ppt/presentation.xml", Data: presentationXML(len(slides))},
		{Name: "ppt/slideMasters/slideMaster1.xml", Data: slideMasterXML()},
		{Name: "ppt/slideMasters/_rels/slideMaster1.xml.rels", Data: relsXML([]relationship{
			{"rId1", relTypeSlideLayout, "../slideLayouts/slideLayout1.xml"},
			{"rId2", relTypeTheme, "../theme/theme1.xml"},
		})},
		{Name: "ppt/slideLayouts/slideLayout1.xml", Data: slideLayoutXML()},
		{Name: "ppt/slideLayouts/_rels/slideLayout1.xml.rels", Data: relsXML([]relationship{
			{"rId1", relTypeSlideMaster, "../slideMasters/slideMaster1.xml"},
		})},
		{Name: "ppt/notesMasters/notesMaster1.xml", Data: notesMasterXML()},
		{Name: "ppt/notesMasters/_rels/notesMaster1.xml.rels", Data: relsXML([]relationship{
			{"rId1", relTypeTheme, "../theme/theme2.xml"},
		})},
		{Name: "ppt/theme/theme1.xml", Data: themeXML("Deck")},
		{Name: "ppt/theme/theme2.xml", Data: themeXML("Deck Notes")},
	}

	mediaCount := 0
	for i, slide := range slides {
		num := i + 1
		slidePart := fmt.Sprintf("ppt/slides/slide%d.xml", num)
		overrides = append(overrides, contentOverride{"/" + slidePart, ctSlide})
		presRels = append(presRels, relationship{
			ID:     fmt.Sprintf("rId%d", 3+i),
			Type:   relTypeSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", num),
		})

		slideRels := []relationship{
			{"rId1", relTypeSlideLayout, "../slideLayouts/slideLayout1.xml"},
		}

		sb := slideBuilder{index: i, slide: slide, nextShapeID: 2}
		sb.addTitle()

		if drawImageRegion(slide) {
			if data, ext, ok := decodeDataURI(slide.ImageURL); ok {
				mediaCount++
				mediaName := fmt.Sprintf("image%d.%s", mediaCount, ext)
				parts = append(parts, zip.Part{Name: "ppt/media/" + mediaName, Data: data})
				relID := fmt.Sprintf("rId%d", len(slideRels)+1)
				slideRels = append(slideRels, relationship{relID, relTypeImage, "../media/" + mediaName})
				sb.addPicture(relID)
			} else {
				sb.addImagePlaceholder()
			}
		}

		sb.addBullets()
		sb.addFooter()

		if slide.Notes != "" {
			notesPart := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", num)
			overrides = append(overrides, contentOverride{"/" + notesPart, ctNotesSlide})
			relID := fmt.Sprintf("rId%d", len(slideRels)+1)
			slideRels = append(slideRels, relationship{relID, relTypeNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", num)})
			parts = append(parts,
				zip.Part{Name: notesPart, Data: notesSlideXML(slide.Notes)},
				zip.Part{Name: fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", num), Data: relsXML([]relationship{
					{"rId1", relTypeNotesMaster, "../notesMasters/notesMaster1.xml"},
					{"rId2", relTypeSlide, fmt.Sprintf("../slides/slide%d.xml", num)},
				})},
			)
		}

		parts = append(parts,
			zip.Part{Name: slidePart, Data: slideXML(sb.shapes.String())},
			zip.Part{Name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num), Data: relsXML(slideRels)},
		)
	}

	parts = append(parts, zip.Part{
		Name: "ppt/_rels/presentation.xml.rels",
		Data: relsXML(presRels),
	})
	parts = append([]zip.Part{{Name: "[Content_Types].xml", Data: contentTypesXML(overrides)}}, parts...)

	return zip.Archive(parts)
}

// RenderBase64 renders the slides and encodes the document as base64
// text, ready for a JSON response body.
func RenderBase64(slides []domain.Slide) (string, error) {
	data, err := Render(slides)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// drawImageRegion decides whether the right-hand image region appears:
// the slide must carry image data or a prompt AND its layout intent
// must be image-eligible. A cover position alone does not force it.
func drawImageRegion(s domain.Slide) bool {
	return s.HasImage() && domain.ClassifyLayout(s.LayoutHint).ImageEligible()
}

type slideBuilder struct {
	index       int
	slide       domain.Slide
	shapes      strings.Builder
	nextShapeID int
}

func (b *slideBuilder) shapeID() int {
	id := b.nextShapeID
	b.nextShapeID++
	return id
}

func (b *slideBuilder) addTitle() {
	s := b.slide
	intent := domain.ClassifyLayout(s.LayoutHint)
	cover := b.index == 0

	if intent.CenteredTitle() || cover {
		y, h, size := 0.8, 0.9, 28
		if cover {
			y, h, size = 1.8, 1.6, 40
		}
		b.shapes.WriteString(textBoxXML(b.shapeID(), "Title", 0.6, y, 12.1, h,
			textStyle{Align: "ctr", SizePt: size, Bold: true, Color: "222222"},
			[]string{s.Title}))
		return
	}
	b.shapes.WriteString(textBoxXML(b.shapeID(), "Title", 0.6, 0.4, 7.5, 0.8,
		textStyle{Align: "l", SizePt: 28, Bold: true, Color: "222222"},
		[]string{s.Title}))
}

const (
	imageRegionX = 8.6
	imageRegionY = 1.4
	imageRegionW = 3.9
	imageRegionH = 3.6
)

func (b *slideBuilder) addPicture(relID string) {
	b.shapes.WriteString(pictureXML(b.shapeID(), "Slide Image", relID,
		imageRegionX, imageRegionY, imageRegionW, imageRegionH))
}

// addImagePlaceholder draws a labeled box carrying the prompt text. It
// stands in both for prompt-only slides and for image data that could
// not be decoded.
func (b *slideBuilder) addImagePlaceholder() {
	s := b.slide
	style := textStyle{Align: "ctr", SizePt: 12, Color: "555555", FillHex: "F5F7FA"}
	lines := []string{"Suggested image:", s.ImagePrompt}
	if s.ImageURL != "" {
		// Image bytes existed but were unusable.
		style.FillHex = "EFEFEF"
		prompt := s.ImagePrompt
		if prompt == "" {
			prompt = "suggested"
		}
		lines = []string{"Image: " + prompt}
	}
	b.shapes.WriteString(textBoxXML(b.shapeID(), "Image Placeholder",
		imageRegionX, imageRegionY, imageRegionW, imageRegionH, style, lines))
}

func (b *slideBuilder) addBullets() {
	s := b.slide
	if len(s.Bullets) == 0 {
		return
	}

	// The column narrows when the slide carries image data or a prompt,
	// even if no image region was drawn for it. Compatible with the
	// behavior the editor UI was built against.
	width := 11.5
	if s.HasImage() {
		width = 7.5
	}
	size := clamp(28-2*len(s.Bullets), 14, 24)

	lines := make([]string, len(s.Bullets))
	for i, bullet := range s.Bullets {
		lines[i] = "• " + bullet
	}
	b.shapes.WriteString(textBoxXML(b.shapeID(), "Body", 0.8, 1.6, width, 4.5,
		textStyle{Align: "l", SizePt: size, Color: "333333"}, lines))
}

func (b *slideBuilder) addFooter() {
	b.shapes.WriteString(textBoxXML(b.shapeID(), "Footer", 12.2, 6.9, 0.9, 0.4,
		textStyle{Align: "r", SizePt: 10, Color: "666666"},
		[]string{fmt.Sprintf("%d", b.index+1)}))
}

// decodeDataURI splits a data:image/...;base64,payload URI into raw
// bytes and a file extension for the media part.
func decodeDataURI(uri string) ([]byte, string, bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", false
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, "", false
	}
	meta := uri[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}
	mime := strings.TrimSuffix(meta, ";base64")
	ext := "jpeg"
	switch mime {
	case "image/png":
		ext = "png"
	case "image/jpeg", "image/jpg", "":
		ext = "jpeg"
	default:
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil || len(data) == 0 {
		return nil, "", false
	}
	return data, ext, true
}
