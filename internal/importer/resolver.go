package importer

// resolver.go maps free-text references (employee names, site names,
// product identifiers) to canonical master-data entities. Resolution is
// deterministic: exact code match, then exact name/alias match, then a
// normalized token-set comparison that only accepts a single unambiguous
// winner. Ties are reported as unresolved, never picked arbitrarily.

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sitewise-app/sitewise/internal/masterdata"
)

// FuzzyThreshold is the minimum Sørensen–Dice coefficient over normalized
// token sets for a fuzzy match to be accepted. 0.80 tolerates one missing
// or reordered token in typical two/three-word names without letting
// sibling entries ("Sede A" vs "Sede B") both qualify.
const FuzzyThreshold = 0.80

// Resolution is the outcome of resolving one reference.
type Resolution struct {
	ID        string // Set when resolved
	Attempted string // The input text, for diagnostics
}

// Resolved reports whether the reference was mapped to an entity.
func (r Resolution) Resolved() bool { return r.ID != "" }

// stripMarks removes diacritics by decomposing to NFD and dropping
// combining marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Resolve maps text to an entity of the given kind in the snapshot.
func Resolve(idx *masterdata.Index, kind masterdata.Kind, text string) Resolution {
	res := Resolution{Attempted: text}
	text = strings.TrimSpace(text)
	if text == "" {
		return res
	}
	entities := idx.Collection(kind)

	// Exact canonical code, case-insensitive.
	for _, e := range entities {
		if e.Code != "" && strings.EqualFold(e.Code, text) {
			res.ID = e.ID
			return res
		}
	}

	// Exact display name or alias, case-insensitive.
	for _, e := range entities {
		if strings.EqualFold(e.DisplayName, text) {
			res.ID = e.ID
			return res
		}
		for _, a := range e.Aliases {
			if strings.EqualFold(a, text) {
				res.ID = e.ID
				return res
			}
		}
	}

	// Fuzzy token-set comparison. Accept only if exactly one candidate
	// clears the threshold.
	want := tokenSet(text)
	if len(want) == 0 {
		return res
	}
	var bestID string
	var best float64
	clearing := 0
	for _, e := range entities {
		score := diceCoefficient(want, tokenSet(e.DisplayName))
		for _, a := range e.Aliases {
			if s := diceCoefficient(want, tokenSet(a)); s > score {
				score = s
			}
		}
		if score >= FuzzyThreshold {
			clearing++
			if score > best {
				best = score
				bestID = e.ID
			}
		}
	}
	if clearing == 1 {
		res.ID = bestID
	}
	return res
}

// NormalizeText lowercases, strips diacritics, maps punctuation to spaces,
// and collapses whitespace. The same normalization feeds both exact-key
// duplicate detection and fuzzy comparison.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(NormalizeText(s)) {
		set[tok] = struct{}{}
	}
	return set
}

// diceCoefficient computes 2|A∩B| / (|A|+|B|) over token sets.
func diceCoefficient(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(a)+len(b))
}
