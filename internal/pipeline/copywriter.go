package pipeline

import (
	"strings"

	"github.com/digitallaunch/launchpad-backend/internal/projects/domain"
)

// brandSuffix is appended to every meta title.
const brandSuffix = " | DigitalLaunch"

// headline templates interpolate the audience differently on purpose:
// some families read better with just the first word ("Domine React em
// Tempo Record"), others with the full phrase. Keep that distinction
// when touching these.
var headlines = map[domain.ProjectType]func(audience string) string{
	domain.TypeEbook: func(a string) string {
		return "Domine " + firstWord(a) + " em Tempo Record"
	},
	domain.TypeCourse: func(a string) string {
		return "O Curso Completo de " + firstWord(a)
	},
	domain.TypeTemplate: func(a string) string {
		return "Templates Profissionais para " + a
	},
	domain.TypeApp: func(a string) string {
		return "A Ferramenta que " + a + " Precisam"
	},
	domain.TypeToolkit: func(a string) string {
		return "Kit Completo para " + a
	},
	domain.TypeOther: func(a string) string {
		return "Tudo o que Você Precisa sobre " + firstWord(a)
	},
}

var descriptions = map[domain.ProjectType]func(audience string) string{
	domain.TypeEbook: func(a string) string {
		return "Um guia completo e prático para " + strings.ToLower(a) +
			" que querem dominar as habilidades essenciais do mercado."
	},
	domain.TypeCourse: func(string) string {
		return "Aprenda do zero ao avançado com um curso estruturado, prático e focado em resultados reais."
	},
	domain.TypeTemplate: func(string) string {
		return "Templates prontos para uso que vão economizar horas do seu tempo e elevar a qualidade dos seus projetos."
	},
	domain.TypeApp: func(a string) string {
		return "Software profissional desenvolvido especificamente para resolver os desafios de " +
			strings.ToLower(a) + "."
	},
	domain.TypeToolkit: func(string) string {
		return "Um conjunto completo de ferramentas e recursos para acelerar seu trabalho e produtividade."
	},
	domain.TypeOther: func(a string) string {
		return "Conteúdo cuidadosamente desenvolvido para transformar " + strings.ToLower(a) +
			" em profissionais de destaque."
	},
}

var stockBenefits = []string{
	"Conteúdo atualizado e relevante para o mercado atual",
	"Aprenda no seu próprio ritmo, sem pressão",
	"Suporte e atualizações incluídas",
	"Acesso vitalício ao material",
	"Aplicação prática imediata no dia a dia",
}

var stockFeatures = []string{
	"Material completo e estruturado",
	"Exemplos práticos e projetos reais",
	"Recursos extras e bônus exclusivos",
	"Garantia de satisfação",
	"Comunidade de suporte",
}

// Copywriter derives landing page copy from the project metadata and the
// analysis stage's output. Deterministic: same inputs, same copy.
type Copywriter struct{}

func NewCopywriter() *Copywriter {
	return &Copywriter{}
}

// Generate selects the template family for the project type (OTHER for
// anything unrecognized) and fills in the audience.
func (w *Copywriter) Generate(p *domain.Project, analysis *domain.AnalysisResult) domain.GeneratedCopy {
	kind := p.ProjectType.Normalize()
	audience := p.TargetAudience

	headline := headlines[kind](audience)
	description := descriptions[kind](audience)

	template := analysis.RecommendedTemplate
	if template == "" {
		template = defaultLandingTemplate
	}

	return domain.GeneratedCopy{
		Headline:        headline,
		Description:     description,
		Benefits:        append([]string(nil), stockBenefits...),
		Features:        append([]string(nil), stockFeatures...),
		MetaTitle:       headline + brandSuffix,
		MetaDescription: description,
		Keywords: []string{
			strings.ToLower(audience),
			strings.ToLower(string(kind)),
			"curso online",
			"aprender",
		},
		LandingTemplate: template,
	}
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
