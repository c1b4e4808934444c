// Package analysis classifies scraped postings, scores them against a
// skill profile and produces application recommendations. The whole
// path is deterministic: same posting text and rubric, same result.
package analysis

// SkillProfile describes one job type: the skills a match is scored
// against and the title keywords that identify the type.
type SkillProfile struct {
	JobType    string
	TechSkills []string
	SoftSkills []string

	// TitleKeywords weigh three times a body keyword during
	// classification and break ties between profiles.
	TitleKeywords []string

	// ExperienceLevels are the entry-level terms that earn the rubric's
	// experience weight when any of them appears in the posting text.
	ExperienceLevels []string
}

// DefaultProfiles returns the built-in profiles. Keys double as the
// job_type values used in configuration.
func DefaultProfiles() map[string]SkillProfile {
	return map[string]SkillProfile{
		"dev": {
			JobType: "dev",
			TechSkills: []string{
				"python", "javascript", "typescript", "go", "golang", "java",
				"react", "node", "django", "flask", "sql", "postgresql",
				"salesforce", "apex", "docker", "kubernetes", "aws", "git",
				"api", "rest", "graphql", "linux", "terraform", "ci/cd",
			},
			SoftSkills: []string{
				"comunicação", "trabalho em equipe", "teamwork", "proatividade",
				"inglês", "english", "agile", "scrum", "problem solving",
			},
			TitleKeywords: []string{
				"desenvolvedor", "desenvolvedora", "developer", "engenheiro de software",
				"software engineer", "programador", "backend", "frontend", "fullstack",
				"full stack", "devops", "sre",
			},
			ExperienceLevels: entryLevelTerms(),
		},
		"admin": {
			JobType: "admin",
			TechSkills: []string{
				"excel", "pacote office", "word", "powerpoint", "crm", "erp",
				"digitação", "planilhas", "outlook", "google workspace",
				"zendesk", "atendimento",
			},
			SoftSkills: []string{
				"comunicação", "organização", "proatividade", "empatia",
				"trabalho em equipe", "pontualidade", "customer service",
			},
			TitleKeywords: []string{
				"assistente", "auxiliar", "atendente", "recepcionista",
				"call center", "suporte", "sac", "administrativo",
				"customer service", "secretária", "secretário",
			},
			ExperienceLevels: entryLevelTerms(),
		},
	}
}

// entryLevelTerms is shared by every profile; the target candidate is
// early-career regardless of job type.
func entryLevelTerms() []string {
	return []string{
		"júnior", "junior", "trainee", "estágio", "estagiário",
		"entry level", "entry-level", "pcd",
	}
}
