package template

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-folio/folio"
)

func fullRecord() *folio.Portfolio {
	return &folio.Portfolio{
		AccountID:       1,
		FullName:        "Ada Lovelace",
		ContactInfo:     "ada@example.com | London",
		PhotoPath:       "data:image/png;base64,iVBORw0KGgo=",
		Bio:             "First programmer.",
		SoftSkills:      []string{"Leadership", "Vision"},
		TechnicalSkills: []string{"Analytical Engine"},
		AcademicBackground: []folio.Entry{
			{Title: "Mathematics", Subtitle: "Private tutoring", Duration: "1829-1841", Description: "Studied under De Morgan"},
		},
		WorkExperience: []folio.Entry{
			{Title: "Translator & Annotator", Subtitle: "Menabrea memoir", Duration: "1842-1843"},
		},
		ProjectsPublications: []folio.Entry{
			{Title: "Note G", Description: "First published algorithm"},
		},
	}
}

func TestRenderDeterministic(t *testing.T) {
	renderer := NewRenderer()

	first, err := renderer.Render(fullRecord())
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := renderer.Render(fullRecord())
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("rendering must be byte-identical for the same record")
	}
}

func TestRenderFullRecord(t *testing.T) {
	renderer := NewRenderer()

	out, err := renderer.Render(fullRecord())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"Ada Lovelace",
		"ada@example.com | London",
		`src="data:image/png;base64,iVBORw0KGgo="`,
		"First programmer.",
		"Soft Skills",
		"Leadership",
		"Technical Skills",
		"Analytical Engine",
		"Academic Background",
		"Studied under De Morgan",
		"Work Experience",
		"Menabrea memoir",
		"Projects &amp; Publications",
		"Note G",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	renderer := NewRenderer()

	out, err := renderer.Render(&folio.Portfolio{
		FullName:   "Ada Lovelace",
		SoftSkills: []string{"Leadership"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, "Ada Lovelace") || !strings.Contains(html, "Leadership") {
		t.Fatalf("expected present fields rendered")
	}
	for _, absent := range []string{
		"<img",
		"class=\"contact\"",
		"class=\"bio\"",
		"Technical Skills",
		"Academic Background",
		"Work Experience",
		"Projects",
	} {
		if strings.Contains(html, absent) {
			t.Fatalf("expected %q omitted for empty record", absent)
		}
	}
}

// The PDF engine loads the document without a base URL, so a photo
// reference must resolve on its own or be dropped.
func TestRenderDropsServerRelativePhoto(t *testing.T) {
	renderer := NewRenderer()

	record := fullRecord()
	record.PhotoPath = "/uploads/1234.png"
	out, err := renderer.Render(record)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if strings.Contains(html, "/uploads/") {
		t.Fatalf("server-relative photo path must not reach the document")
	}
	if strings.Contains(html, "<img") {
		t.Fatalf("unresolvable photo must be omitted entirely")
	}
}

func TestRenderKeepsAbsolutePhotoURL(t *testing.T) {
	renderer := NewRenderer()

	record := fullRecord()
	record.PhotoPath = "https://example.com/ada.png"
	out, err := renderer.Render(record)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `src="https://example.com/ada.png"`) {
		t.Fatalf("absolute photo URL must be kept")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	renderer := NewRenderer()

	out, err := renderer.Render(&folio.Portfolio{
		FullName: `<script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("record content must be escaped")
	}
}

func TestRenderNilRecord(t *testing.T) {
	renderer := NewRenderer()
	if _, err := renderer.Render(nil); folio.KindFromError(err) != folio.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
