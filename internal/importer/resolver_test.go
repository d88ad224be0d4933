package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitewise-app/sitewise/internal/masterdata"
)

func resolverIndex() *masterdata.Index {
	return &masterdata.Index{
		Employees: []masterdata.Entity{
			{ID: "emp-1", Code: "E001", DisplayName: "Mario Rossi", Aliases: []string{"M. Rossi"}},
			{ID: "emp-2", DisplayName: "Maria Rossi"},
		},
		Sites: []masterdata.Entity{
			{ID: "site-1", Code: "SA", DisplayName: "Sede A"},
			{ID: "site-2", Code: "SB", DisplayName: "Sede B"},
			{ID: "site-3", DisplayName: "Cantiere Nord Milano SRL"},
			{ID: "site-4", DisplayName: "Cantiere Nicolò"},
		},
	}
}

func TestResolveExactCode(t *testing.T) {
	idx := resolverIndex()

	res := Resolve(idx, masterdata.KindEmployee, "e001")
	assert.True(t, res.Resolved())
	assert.Equal(t, "emp-1", res.ID)
}

func TestResolveExactNameAndAlias(t *testing.T) {
	idx := resolverIndex()

	res := Resolve(idx, masterdata.KindEmployee, "MARIO ROSSI")
	assert.Equal(t, "emp-1", res.ID)

	res = Resolve(idx, masterdata.KindEmployee, "m. rossi")
	assert.Equal(t, "emp-1", res.ID)
}

func TestResolveFuzzySingleWinner(t *testing.T) {
	idx := resolverIndex()

	// Token overlap 3 of {3,4} tokens: dice 6/7, above threshold, and only
	// one site qualifies.
	res := Resolve(idx, masterdata.KindSite, "Cantiere Milano Nord")
	assert.True(t, res.Resolved())
	assert.Equal(t, "site-3", res.ID)
}

func TestResolveFuzzyDiacritics(t *testing.T) {
	idx := resolverIndex()

	res := Resolve(idx, masterdata.KindSite, "cantiere nicolo")
	assert.Equal(t, "site-4", res.ID)
}

func TestResolveSiblingSitesStayDistinct(t *testing.T) {
	idx := resolverIndex()

	res := Resolve(idx, masterdata.KindSite, "Sede A")
	assert.Equal(t, "site-1", res.ID)

	res = Resolve(idx, masterdata.KindSite, "Sede B")
	assert.Equal(t, "site-2", res.ID)
}

func TestResolveTieIsUnresolved(t *testing.T) {
	idx := &masterdata.Index{
		Sites: []masterdata.Entity{
			{ID: "dup-1", DisplayName: "Deposito Nord"},
			{ID: "dup-2", DisplayName: "Deposito Nord"},
		},
	}

	// Extra whitespace defeats the exact match; both entries then clear the
	// fuzzy threshold, so the tie must come back unresolved.
	res := Resolve(idx, masterdata.KindSite, "Deposito  Nord ")
	assert.False(t, res.Resolved())
	assert.Equal(t, "Deposito  Nord ", res.Attempted)
}

func TestResolveUnknownText(t *testing.T) {
	idx := resolverIndex()

	res := Resolve(idx, masterdata.KindEmployee, "Giovanni Bianchi")
	assert.False(t, res.Resolved())

	res = Resolve(idx, masterdata.KindEmployee, "")
	assert.False(t, res.Resolved())
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Mario   Rossi ", "mario rossi"},
		{"Nicolò", "nicolo"},
		{"Pittura-Bianca (14L)", "pittura bianca 14l"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.input), "input %q", tt.input)
	}
}

func TestDiceCoefficient(t *testing.T) {
	a := tokenSet("cantiere nord milano")
	b := tokenSet("cantiere milano nord")
	assert.InDelta(t, 1.0, diceCoefficient(a, b), 1e-9)

	c := tokenSet("sede a")
	d := tokenSet("sede b")
	assert.InDelta(t, 0.5, diceCoefficient(c, d), 1e-9)

	assert.Zero(t, diceCoefficient(tokenSet(""), a))
}
