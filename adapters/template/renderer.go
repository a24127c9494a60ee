// Package template renders a portfolio record into a self-contained HTML
// document suitable for PDF conversion.
package template

import (
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/goliatone/go-folio/folio"
)

// Renderer renders portfolio HTML with a pongo2 template. The zero value
// uses the built-in resume template.
type Renderer struct {
	Template *pongo2.Template
}

// NewRenderer creates a renderer using the built-in template.
func NewRenderer() *Renderer {
	return &Renderer{Template: defaultTemplate}
}

// Render executes the template over the record. Output is deterministic
// for a given record.
func (r *Renderer) Render(record *folio.Portfolio) ([]byte, error) {
	if record == nil {
		return nil, folio.NewError(folio.KindValidation, "portfolio record is required", nil)
	}

	tpl := defaultTemplate
	if r != nil && r.Template != nil {
		tpl = r.Template
	}

	record.Normalize()
	out, err := tpl.ExecuteBytes(pongo2.Context{
		"record":   record,
		"photo":    embeddablePhoto(record.PhotoPath),
		"sections": entrySections(record),
	})
	if err != nil {
		return nil, folio.NewError(folio.KindInternal, "portfolio template execution failed", err)
	}
	return out, nil
}

// embeddablePhoto returns a src usable from a document with no base
// URL. Server-relative paths cannot resolve there and are dropped.
func embeddablePhoto(photoPath string) string {
	if strings.HasPrefix(photoPath, "data:") ||
		strings.HasPrefix(photoPath, "http://") ||
		strings.HasPrefix(photoPath, "https://") {
		return photoPath
	}
	return ""
}

type entrySection struct {
	Title   string
	Entries []folio.Entry
}

func entrySections(record *folio.Portfolio) []entrySection {
	return []entrySection{
		{Title: "Academic Background", Entries: record.AcademicBackground},
		{Title: "Work Experience", Entries: record.WorkExperience},
		{Title: "Projects & Publications", Entries: record.ProjectsPublications},
	}
}

var defaultTemplate = pongo2.Must(pongo2.FromString(resumeTemplate))

const resumeTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ record.FullName }}</title>
<style>
  body { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; color: #1f2933; margin: 0; }
  .header { display: flex; align-items: center; gap: 24px; border-bottom: 2px solid #2563eb; padding-bottom: 16px; margin-bottom: 20px; }
  .header img { width: 96px; height: 96px; object-fit: cover; border-radius: 50%; }
  .header h1 { margin: 0; font-size: 28px; }
  .contact { color: #52606d; font-size: 13px; margin-top: 4px; }
  .bio { font-size: 14px; line-height: 1.5; margin-bottom: 20px; }
  h2 { font-size: 16px; color: #2563eb; border-bottom: 1px solid #d9e2ec; padding-bottom: 4px; margin: 20px 0 10px; }
  .tags { display: flex; flex-wrap: wrap; gap: 6px; }
  .tag { background: #e0e7ff; color: #3730a3; border-radius: 10px; padding: 3px 10px; font-size: 12px; }
  .entry { margin-bottom: 12px; }
  .entry .title { font-weight: 600; font-size: 14px; }
  .entry .subtitle { color: #52606d; font-size: 13px; }
  .entry .duration { color: #829ab1; font-size: 12px; }
  .entry .description { font-size: 13px; line-height: 1.4; margin-top: 2px; }
</style>
</head>
<body>
<div class="header">
{% if photo %}  <img src="{{ photo }}" alt="photo">
{% endif %}  <div>
    <h1>{{ record.FullName }}</h1>
{% if record.ContactInfo %}    <div class="contact">{{ record.ContactInfo }}</div>
{% endif %}  </div>
</div>
{% if record.Bio %}<p class="bio">{{ record.Bio }}</p>
{% endif %}{% if record.SoftSkills %}<h2>Soft Skills</h2>
<div class="tags">{% for skill in record.SoftSkills %}<span class="tag">{{ skill }}</span>{% endfor %}</div>
{% endif %}{% if record.TechnicalSkills %}<h2>Technical Skills</h2>
<div class="tags">{% for skill in record.TechnicalSkills %}<span class="tag">{{ skill }}</span>{% endfor %}</div>
{% endif %}{% for section in sections %}{% if section.Entries %}<h2>{{ section.Title }}</h2>
{% for entry in section.Entries %}<div class="entry">
{% if entry.Title %}  <div class="title">{{ entry.Title }}</div>
{% endif %}{% if entry.Subtitle %}  <div class="subtitle">{{ entry.Subtitle }}</div>
{% endif %}{% if entry.Duration %}  <div class="duration">{{ entry.Duration }}</div>
{% endif %}{% if entry.Description %}  <div class="description">{{ entry.Description }}</div>
{% endif %}</div>
{% endfor %}{% endif %}{% endfor %}</body>
</html>
`
