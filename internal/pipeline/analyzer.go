package pipeline

import "github.com/digitallaunch/launchpad-backend/internal/projects/domain"

const defaultLandingTemplate = "HERO_FOCUS"

// Analyzer stands in for the content-analysis inference call. It builds
// a deterministic payload from the submitted metadata; a real
// implementation swaps the body out and keeps the stage contract.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) Analyze(p *domain.Project) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Classification: domain.Classification{
			ConfirmedType: p.ProjectType.Normalize(),
			Category:      "Tecnologia",
			Subcategory:   "Desenvolvimento Web",
			Confidence:    95,
		},
		ContentAnalysis: domain.ContentAnalysis{
			MainTopics:     []string{"React", "Next.js", "TypeScript"},
			Complexity:     p.SkillLevel,
			EstimatedValue: 97,
			UniqueSellingPoints: []string{
				"Conteúdo prático e direto",
				"Exemplos reais",
				"Suporte completo",
			},
		},
		AudienceProfile: domain.AudienceProfile{
			PrimaryAudience: p.TargetAudience,
			PainPoints: []string{
				"Dificuldade em aprender frameworks modernos",
				"Falta de projetos práticos",
			},
			DesiredOutcomes: []string{
				"Dominar desenvolvimento web moderno",
				"Construir aplicações profissionais",
			},
		},
		RecommendedTemplate: defaultLandingTemplate,
	}
}
