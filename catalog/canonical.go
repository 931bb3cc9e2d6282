package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agc2020/consulta/core"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips combining marks, so "Instrução" and
// "instrucao" compare equal. It is the shared normalization for issuing-body
// canonicalization, act-type classification and index tokenization.
func Fold(s string) string {
	result, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// bodyToken maps a folded substring to a canonical issuing-body label.
// Tokens are tested in order; the first containment match wins.
type bodyToken struct {
	token string
	label string
}

// More specific tokens first: "estado do parana" must not be claimed by the
// bare "parana" token further down.
var bodyTokens = []bodyToken{
	{"tribunal de justica", core.BodyTJPR},
	{"tjpr", core.BodyTJPR},
	{"conselho nacional de justica", core.BodyCNJ},
	{"cnj", core.BodyCNJ},
	{"estadual", core.BodyEstadual},
	{"estado do parana", core.BodyEstadual},
	{"federal", core.BodyFederal},
	{"uniao", core.BodyFederal},
	{"parana", core.BodyTJPR},
}

// CanonicalBody normalizes a raw issuing-body heading to one of the fixed
// canonical labels. Matching is by case- and diacritic-insensitive substring
// containment. Unrecognized text passes through unchanged, which also makes
// the function idempotent: every canonical label maps to itself.
func CanonicalBody(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	folded := Fold(trimmed)
	for _, bt := range bodyTokens {
		if strings.Contains(folded, bt.token) {
			return bt.label
		}
	}
	return trimmed
}
