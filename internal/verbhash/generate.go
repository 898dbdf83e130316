package verbhash

import (
	"sort"
	"strings"

	"github.com/kamusis/verbmotion/internal/normalize"
)

// Anchor ties one anchor verb to the template that claims it.
type Anchor struct {
	Verb       string
	TemplateID string
}

// AnchorsFromMap turns a verb → template id index into anchors sorted by
// verb.
func AnchorsFromMap(m map[string]string) []Anchor {
	out := make([]Anchor, 0, len(m))
	for v, id := range m {
		out = append(out, Anchor{Verb: v, TemplateID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Verb < out[j].Verb })
	return out
}

// Collision records a surface form claimed by two templates. Next wins.
type Collision struct {
	Form     string
	Previous string
	Next     string
}

// Generate expands anchors into the verb-hash artifact: each base verb plus
// its third-person, gerund, past and participle forms. Irregular verbs come
// from irr; the rest follow the regular suffix rules. Anchors are applied in
// order and a form claimed by a different template is overwritten.
func Generate(anchors []Anchor, irr Irregular) (map[string]string, []Collision) {
	out := make(map[string]string)
	var collisions []Collision
	for _, a := range anchors {
		for _, form := range Conjugate(a.Verb, irr) {
			if prev, ok := out[form]; ok && prev != a.TemplateID {
				collisions = append(collisions, Collision{Form: form, Previous: prev, Next: a.TemplateID})
			}
			out[form] = a.TemplateID
		}
	}
	return out, collisions
}

// Conjugate returns the base form of verb followed by its inflections, with
// duplicates removed. For phrasal verbs ("jump up") only the head word is
// inflected.
func Conjugate(verb string, irr Irregular) []string {
	words := normalize.Words(verb)
	if len(words) == 0 {
		return nil
	}
	head, tail := words[0], ""
	if len(words) > 1 {
		tail = " " + strings.Join(words[1:], " ")
	}

	var forms []string
	if f, ok := irr[head]; ok {
		forms = []string{head, f.Third, f.Gerund, f.Past, f.Participle}
	} else {
		past := pastTense(head)
		forms = []string{head, thirdPerson(head), gerund(head), past, past}
	}

	seen := make(map[string]bool, len(forms))
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		if f == "" {
			continue
		}
		f += tail
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func endsConsonantY(v string) bool {
	return len(v) >= 2 && v[len(v)-1] == 'y' && !isVowel(v[len(v)-2])
}

// doublesFinal reports whether v is a short consonant-vowel-consonant stem
// whose last consonant doubles before a vowel suffix (trot → trotting).
func doublesFinal(v string) bool {
	n := len(v)
	if n < 3 {
		return false
	}
	last, mid, first := v[n-1], v[n-2], v[n-3]
	if isVowel(last) || !isVowel(mid) || isVowel(first) {
		return false
	}
	if last == 'w' || last == 'x' || last == 'y' {
		return false
	}
	groups := 0
	prev := false
	for i := 0; i < n; i++ {
		cur := isVowel(v[i])
		if cur && !prev {
			groups++
		}
		prev = cur
	}
	return groups == 1
}

func thirdPerson(v string) string {
	switch {
	case strings.HasSuffix(v, "s"), strings.HasSuffix(v, "x"), strings.HasSuffix(v, "z"),
		strings.HasSuffix(v, "ch"), strings.HasSuffix(v, "sh"), strings.HasSuffix(v, "o"):
		return v + "es"
	case endsConsonantY(v):
		return v[:len(v)-1] + "ies"
	}
	return v + "s"
}

func gerund(v string) string {
	switch {
	case strings.HasSuffix(v, "ie"):
		return v[:len(v)-2] + "ying"
	case strings.HasSuffix(v, "ee"), strings.HasSuffix(v, "ye"), strings.HasSuffix(v, "oe"):
		return v + "ing"
	case strings.HasSuffix(v, "e") && len(v) > 2:
		return v[:len(v)-1] + "ing"
	case doublesFinal(v):
		return v + v[len(v)-1:] + "ing"
	}
	return v + "ing"
}

func pastTense(v string) string {
	switch {
	case strings.HasSuffix(v, "e"):
		return v + "d"
	case endsConsonantY(v):
		return v[:len(v)-1] + "ied"
	case doublesFinal(v):
		return v + v[len(v)-1:] + "ed"
	}
	return v + "ed"
}
