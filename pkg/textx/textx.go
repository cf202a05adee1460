package textx

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// acronyms stay fully uppercase regardless of how they were typed.
var acronyms = map[string]struct{}{
	"IT":  {},
	"HR":  {},
	"CEO": {},
	"CTO": {},
	"CFO": {},
	"UI":  {},
	"UX":  {},
}

// SmartTitle title-cases each whitespace-separated word, keeping known
// acronyms fully uppercase. Surrounding and repeated whitespace collapses to
// single spaces.
func SmartTitle(s string) string {
	title := cases.Title(language.English)

	words := strings.Fields(s)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
			continue
		}
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}
