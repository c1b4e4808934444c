package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanotecnologista/jobradar/internal/types"
)

func posting(title, company, location, description string) types.JobPosting {
	return types.JobPosting{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
	}
}

func TestKeywordFilter_MatchesAnyKeyword(t *testing.T) {
	f := &KeywordFilter{Keywords: []string{"python", "go"}}

	assert.True(t, f.Keep(posting("Python Developer", "Acme", "", "")))
	assert.True(t, f.Keep(posting("Backend", "Acme", "", "experience with Go required")))
	assert.False(t, f.Keep(posting("Sales Rep", "Acme", "", "close deals")))
}

func TestKeywordFilter_EmptyListKeepsAll(t *testing.T) {
	f := &KeywordFilter{}
	assert.True(t, f.Keep(posting("Anything", "Acme", "", "")))
}

func TestRemoteFilter(t *testing.T) {
	f := &RemoteFilter{}

	assert.True(t, f.Keep(posting("Dev", "Acme", "Remoto", "")))
	assert.True(t, f.Keep(posting("Dev", "Acme", "São Paulo", "trabalho 100% remoto")))
	assert.True(t, f.Keep(posting("Dev (Home Office)", "Acme", "Brasil", "")))
	assert.False(t, f.Keep(posting("Dev", "Acme", "São Paulo - presencial", "")))
}

func TestRemoteFilter_EmptyLocationGetsBenefitOfDoubt(t *testing.T) {
	f := &RemoteFilter{}
	assert.True(t, f.Keep(posting("Dev", "Acme", "", "")))
}

func TestBlacklistFilter(t *testing.T) {
	f := &BlacklistFilter{
		Companies: []string{"Shady Corp"},
		Keywords:  []string{"100% comissionado"},
	}

	assert.False(t, f.Keep(posting("Dev", "Shady Corp LTDA", "Remoto", "")))
	assert.False(t, f.Keep(posting("Vendedor", "Acme", "Remoto", "pagamento 100% comissionado")))
	assert.True(t, f.Keep(posting("Dev", "Acme", "Remoto", "CLT")))
}

func TestBlacklistFilter_CaseInsensitive(t *testing.T) {
	f := &BlacklistFilter{Companies: []string{"shady corp"}}
	assert.False(t, f.Keep(posting("Dev", "SHADY CORP", "", "")))
}

func TestChain_AppliesInOrderAndOnlyRemoves(t *testing.T) {
	chain := DefaultChain(
		[]string{"python"},
		[]string{"Shady Corp"},
		[]string{"comissionado"},
	)

	input := []types.JobPosting{
		posting("Python Dev", "Acme", "Remoto", ""),             // survives
		posting("Java Dev", "Acme", "Remoto", ""),               // killed by keyword
		posting("Python Dev", "Acme", "Escritório presencial", ""), // killed by remote
		posting("Python Dev", "Shady Corp", "Remoto", ""),       // killed by blacklist
	}

	out := chain.Apply(input)
	assert.Len(t, out, 1)
	assert.Equal(t, "Acme", out[0].Company)

	// output must be a subsequence of the input
	assert.LessOrEqual(t, len(out), len(input))
}

func TestChain_EmptyInput(t *testing.T) {
	chain := DefaultChain(nil, nil, nil)
	assert.Empty(t, chain.Apply(nil))
}

func TestChain_PreservesOrder(t *testing.T) {
	chain := NewChain(&RemoteFilter{})
	input := []types.JobPosting{
		posting("A", "1", "Remoto", ""),
		posting("B", "2", "presencial sp", ""),
		posting("C", "3", "remote", ""),
	}
	out := chain.Apply(input)
	assert.Equal(t, []string{"A", "C"}, []string{out[0].Title, out[1].Title})
}
