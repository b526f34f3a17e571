// Package mask implements the reversible text-substitution engine: masking
// replaces configured names with placeholder tokens, unmasking restores
// them.
//
// Matching policy: occurrences are matched case-insensitively and only at
// word boundaries (a match never starts or ends inside an alphanumeric
// run). Matching is line-local; whitespace inside a configured name matches
// literal spaces only, never a newline. Restoration always emits the
// canonical configured casing.
//
// Both engines are total functions over any input text: unmatched names and
// unknown bracket tokens pass through untouched and never raise an error.
package mask

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/anonsum/anonsum/internal/logger"
	"github.com/anonsum/anonsum/internal/registry"
)

// tokenPattern matches the placeholder wire format [<CATEGORY>_<INDEX>].
// This is the one syntax the external summarizer must pass through intact.
var tokenPattern = regexp.MustCompile(`\[(?:ORG|PROJECT|PERSON)_[1-9][0-9]*\]`)

// Finding aggregates the substitutions applied for one registry entry.
type Finding struct {
	Entry registry.Entry
	Count int
}

// Result contains the outcome of one masking pass.
type Result struct {
	Text     string
	Count    int
	Findings []Finding
}

// CountByCategory returns applied substitution counts per category.
func (r Result) CountByCategory() map[registry.Category]int {
	counts := make(map[registry.Category]int)
	for _, f := range r.Findings {
		counts[f.Entry.Category] += f.Count
	}
	return counts
}

// Engine performs masking and unmasking against a fixed registry.
type Engine struct {
	reg         *registry.Registry
	log         *logger.Logger
	namePattern *regexp.Regexp // nil when the registry is empty
	byKey       map[string]registry.Entry
}

// NewEngine compiles the matching machinery for the given registry.
func NewEngine(reg *registry.Registry, log *logger.Logger) *Engine {
	e := &Engine{
		reg:   reg,
		log:   log,
		byKey: make(map[string]registry.Entry, reg.Len()),
	}

	entries := reg.Entries()

	// A name configured in two categories masks as the earliest category;
	// the first write wins because entries come in category order.
	for _, entry := range entries {
		key := strings.ToLower(entry.Name)
		if _, ok := e.byKey[key]; !ok {
			e.byKey[key] = entry
		}
	}

	// Longest name first so "Project Alpha Team" is never shadowed by a
	// configured substring like "Project Alpha". Ties keep registry order.
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Name) > len(entries[j].Name)
	})

	if len(entries) > 0 {
		alts := make([]string, len(entries))
		for i, entry := range entries {
			alts[i] = boundaryQuote(entry.Name)
		}
		e.namePattern = regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
	}

	return e
}

// boundaryQuote escapes a name for the alternation and anchors it with \b
// where the name edge is a word character. Names that start or end with
// punctuation get no anchor on that side, since \b would never match there.
func boundaryQuote(name string) string {
	quoted := regexp.QuoteMeta(name)
	if isWordByte(name[0]) {
		quoted = `\b` + quoted
	}
	if isWordByte(name[len(name)-1]) {
		quoted += `\b`
	}
	return quoted
}

// isWordByte mirrors the regexp package's \b word-character class.
func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

// Mask replaces every occurrence of a registry name with its placeholder in
// a single left-to-right pass. Produced placeholders are never rescanned,
// so no nested or repeated substitution can occur. Zero matches is a valid,
// non-error outcome. The input and the registry are never mutated.
func (e *Engine) Mask(text string) Result {
	if e.namePattern == nil {
		return Result{Text: text}
	}

	counts := make(map[string]int)
	total := 0

	masked := e.namePattern.ReplaceAllStringFunc(text, func(match string) string {
		entry, ok := e.byKey[strings.ToLower(match)]
		if !ok {
			return match
		}
		counts[entry.Placeholder]++
		total++
		return entry.Placeholder
	})

	var findings []Finding
	for _, entry := range e.reg.Entries() {
		if n := counts[entry.Placeholder]; n > 0 {
			findings = append(findings, Finding{Entry: entry, Count: n})
			e.log.Debug("name masked",
				zap.String("category", string(entry.Category)),
				zap.String("placeholder", entry.Placeholder),
				zap.Int("count", n),
			)
		}
	}

	return Result{Text: masked, Count: total, Findings: findings}
}

// Unmask restores the canonical name for every recognized placeholder
// token, however many times it repeats. Tokens that match the placeholder
// syntax but no registry entry are left untouched, since the external
// summarizer may introduce bracket notation of its own. Surrounding
// punctuation never matters: only the literal token is matched.
func (e *Engine) Unmask(text string) string {
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		if entry, ok := e.reg.Lookup(token); ok {
			return entry.Name
		}
		return token
	})
}

// ContainsPlaceholders reports whether text carries any placeholder-syntax
// token, known or not.
func ContainsPlaceholders(text string) bool {
	return tokenPattern.MatchString(text)
}
