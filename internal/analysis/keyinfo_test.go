package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanotecnologista/jobradar/internal/types"
)

func TestExtractKeyInformation_Salary(t *testing.T) {
	job := types.JobPosting{
		Description: "Salário de R$ 5.000,00 a R$ 7.000,00 conforme experiência",
	}
	info := ExtractKeyInformation(job)
	assert.NotEmpty(t, info.SalaryMentions)
	assert.Contains(t, info.SalaryMentions[0], "R$ 5.000,00")
}

func TestExtractKeyInformation_SalaryToNegotiate(t *testing.T) {
	job := types.JobPosting{Description: "Oferecemos salário a combinar e benefícios"}
	info := ExtractKeyInformation(job)
	assert.NotEmpty(t, info.SalaryMentions)
}

func TestExtractKeyInformation_Benefits(t *testing.T) {
	job := types.JobPosting{
		Benefits: "Vale refeição, plano de saúde, Gympass e day off no aniversário",
	}
	info := ExtractKeyInformation(job)
	assert.Contains(t, info.Benefits, "vale refeição")
	assert.Contains(t, info.Benefits, "plano de saúde")
	assert.Contains(t, info.Benefits, "gympass")
	assert.Contains(t, info.Benefits, "day off")
}

func TestExtractKeyInformation_WorkModeRemote(t *testing.T) {
	job := types.JobPosting{Location: "Remoto", Description: "trabalho 100% remoto"}
	info := ExtractKeyInformation(job)
	assert.Equal(t, WorkModeRemote, info.WorkMode)
}

func TestExtractKeyInformation_HybridOutranksRemote(t *testing.T) {
	job := types.JobPosting{Description: "modelo híbrido com dias remotos"}
	info := ExtractKeyInformation(job)
	assert.Equal(t, WorkModeHybrid, info.WorkMode)
}

func TestExtractKeyInformation_Onsite(t *testing.T) {
	job := types.JobPosting{Description: "trabalho presencial em São Paulo"}
	info := ExtractKeyInformation(job)
	assert.Equal(t, WorkModeOnsite, info.WorkMode)
}

func TestExtractKeyInformation_Unspecified(t *testing.T) {
	job := types.JobPosting{Description: "venha trabalhar conosco"}
	info := ExtractKeyInformation(job)
	assert.Equal(t, WorkModeUnspecified, info.WorkMode)
}

func TestExtractKeyInformation_Schedule(t *testing.T) {
	job := types.JobPosting{
		Description: "Horário de segunda a sexta, 9h às 18h, escala 5x2",
	}
	info := ExtractKeyInformation(job)
	assert.NotEmpty(t, info.ScheduleMentions)
	assert.Contains(t, info.ScheduleMentions, "segunda a sexta")
}

func TestExtractKeyInformation_DedupsMentions(t *testing.T) {
	job := types.JobPosting{
		Description: "R$ 3.000 por mês. Sim, R$ 3.000 garantidos.",
	}
	info := ExtractKeyInformation(job)
	assert.Len(t, info.SalaryMentions, 1)
}
