package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

func TestCopywriter_Generate(t *testing.T) {
	writer := NewCopywriter()
	analysis := &domain.AnalysisResult{RecommendedTemplate: "HERO_FOCUS"}

	t.Run("ebook headline uses the first audience word", func(t *testing.T) {
		p := &domain.Project{ProjectType: domain.TypeEbook, TargetAudience: "Desenvolvedores React"}
		got := writer.Generate(p, analysis)

		assert.Equal(t, "Domine Desenvolvedores em Tempo Record", got.Headline)
		assert.Equal(t, got.Headline+" | DigitalLaunch", got.MetaTitle)
	})

	t.Run("template headline uses the full audience phrase", func(t *testing.T) {
		p := &domain.Project{ProjectType: domain.TypeTemplate, TargetAudience: "Designers Freelancers"}
		got := writer.Generate(p, analysis)

		assert.Equal(t, "Templates Profissionais para Designers Freelancers", got.Headline)
	})

	t.Run("unknown project type falls back to OTHER", func(t *testing.T) {
		p := &domain.Project{ProjectType: "PODCAST", TargetAudience: "Criadores de Conteúdo"}
		got := writer.Generate(p, analysis)

		assert.Equal(t, "Tudo o que Você Precisa sobre Criadores", got.Headline)
		assert.Contains(t, got.Keywords, "other")
	})

	t.Run("keywords are audience, type and stock terms", func(t *testing.T) {
		p := &domain.Project{ProjectType: domain.TypeCourse, TargetAudience: "Desenvolvedores React"}
		got := writer.Generate(p, analysis)

		assert.Equal(t, []string{"desenvolvedores react", "course", "curso online", "aprender"}, got.Keywords)
	})

	t.Run("every field is populated", func(t *testing.T) {
		for _, kind := range []domain.ProjectType{
			domain.TypeEbook, domain.TypeCourse, domain.TypeTemplate,
			domain.TypeApp, domain.TypeToolkit, domain.TypeOther,
		} {
			p := &domain.Project{ProjectType: kind, TargetAudience: "Profissionais de Marketing"}
			got := writer.Generate(p, analysis)

			assert.NotEmpty(t, got.Headline, "headline for %s", kind)
			assert.NotEmpty(t, got.Description, "description for %s", kind)
			assert.Len(t, got.Benefits, 5)
			assert.Len(t, got.Features, 5)
			assert.True(t, strings.HasSuffix(got.MetaTitle, " | DigitalLaunch"))
			assert.Equal(t, got.Description, got.MetaDescription)
			assert.Equal(t, "HERO_FOCUS", got.LandingTemplate)
		}
	})

	t.Run("empty recommended template falls back to the default", func(t *testing.T) {
		p := &domain.Project{ProjectType: domain.TypeCourse, TargetAudience: "Estudantes"}
		got := writer.Generate(p, &domain.AnalysisResult{})

		assert.Equal(t, defaultLandingTemplate, got.LandingTemplate)
	})
}
