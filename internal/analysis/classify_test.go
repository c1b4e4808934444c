package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_DevByTitle(t *testing.T) {
	got := Classify("Desenvolvedor Backend Pleno", "trabalhe com APIs", DefaultProfiles())
	assert.Equal(t, "dev", got)
}

func TestClassify_AdminByTitle(t *testing.T) {
	got := Classify("Assistente Administrativo", "rotinas de escritório e atendimento", DefaultProfiles())
	assert.Equal(t, "admin", got)
}

func TestClassify_TitleOutweighsBody(t *testing.T) {
	// body leans admin, but the title is unmistakably dev
	body := "atendimento ao cliente e excel"
	got := Classify("Software Engineer", body, DefaultProfiles())
	assert.Equal(t, "dev", got)
}

func TestClassify_BodySkillsDecideWithoutTitleSignal(t *testing.T) {
	body := "experiência com python, docker, aws e sql"
	got := Classify("Oportunidade incrível", body, DefaultProfiles())
	assert.Equal(t, "dev", got)
}

func TestClassify_NoSignalDefaultsToDev(t *testing.T) {
	got := Classify("Oportunidade", "venha trabalhar conosco", DefaultProfiles())
	assert.Equal(t, "dev", got)
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("we use go and python", "go"))
	assert.False(t, containsWord("sign in with google", "go"))
	assert.True(t, containsWord("go at the start", "go"))
	assert.True(t, containsWord("ends with go", "go"))
	assert.True(t, containsWord("ci/cd pipelines", "ci/cd"))
}
