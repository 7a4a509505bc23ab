package landing

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const fallbackTemplate = "hero_focus"

// Renderer turns a completed project into its public landing page.
// The template family is chosen by the record's landingTemplate field,
// falling back to hero_focus for unknown families.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse landing templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// pageData is the view model handed to the templates. All derived
// fields are guaranteed present for a published record.
type pageData struct {
	Slug            string
	ProjectType     string
	TargetAudience  string
	Headline        string
	Description     string
	Benefits        []string
	Features        []string
	MetaTitle       string
	MetaDescription string
	Keywords        string
	Price           string
	CheckoutPath    string
}

func (r *Renderer) Render(w io.Writer, p *domain.Project) error {
	name := fallbackTemplate
	if p.LandingTemplate != nil {
		candidate := strings.ToLower(*p.LandingTemplate) + ".tmpl"
		if r.templates.Lookup(candidate) != nil {
			name = strings.ToLower(*p.LandingTemplate)
		}
	}

	price := "Consultar"
	if p.Price != nil {
		price = fmt.Sprintf("R$ %.2f", *p.Price)
	}

	data := pageData{
		Slug:            p.Slug,
		ProjectType:     strings.ReplaceAll(string(p.ProjectType), "_", " "),
		TargetAudience:  strings.ToLower(p.TargetAudience),
		Headline:        deref(p.Headline),
		Description:     deref(p.Description),
		Benefits:        p.Benefits,
		Features:        p.Features,
		MetaTitle:       deref(p.MetaTitle),
		MetaDescription: deref(p.MetaDescription),
		Keywords:        strings.Join(p.Keywords, ", "),
		Price:           price,
		CheckoutPath:    "/api/checkout/" + p.ID.String(),
	}
	if data.MetaTitle == "" {
		data.MetaTitle = data.Headline
	}
	if data.MetaDescription == "" {
		data.MetaDescription = data.Description
	}

	return r.templates.ExecuteTemplate(w, name+".tmpl", data)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
