package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/scenic/session"
)

// isWordBoundary reports whether r separates completion words. Scene and
// host identifiers consist of letters, digits and underscores.
func isWordBoundary(r rune) bool {
	return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// wordBounds returns the word at cursor and its byte boundaries within input.
// The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completionSet holds the names offered for completion.
type completionSet struct {
	funcs []string
	vars  []string
	ids   []string
}

// completions collects the current function, variable and expression names.
// Generated variable names are omitted.
func completions(sess *session.Session) completionSet {
	var c completionSet

	for _, name := range sess.Registry().Names() {
		if name != "" {
			c.funcs = append(c.funcs, name)
		}
	}

	c.vars = append(c.vars, sess.Document().Variables()...)

	for _, v := range sess.Evaluator().Variables() {
		if !strings.HasPrefix(v, "__") {
			c.vars = append(c.vars, v)
		}
	}

	slices.Sort(c.vars)
	c.vars = slices.Compact(c.vars)

	for _, x := range sess.Document().Expressions() {
		c.ids = append(c.ids, x.ID)
	}

	return c
}

// candidates returns the names that may complete the word starting at
// wordStart: command names for the first word after ':', expression ids for
// the arguments of ":rm", and otherwise functions and variables.
func (c completionSet) candidates(input string, wordStart int) []string {
	if rest, ok := strings.CutPrefix(input, ":"); ok {
		fields := strings.Fields(rest[:max(wordStart-1, 0)])
		if len(fields) == 0 {
			return ctrlCommands
		}

		if fields[0] == "rm" {
			return c.ids
		}

		return nil
	}

	return slices.Concat(c.funcs, c.vars)
}

func (c completionSet) isFunction(name string) bool {
	_, found := slices.BinarySearch(c.funcs, name)

	return found
}

// match returns the fuzzy matches for the word at cursor, best first, along
// with the word boundaries. An empty word has no matches.
func (c completionSet) match(input string, cursor int) (fuzzy.Matches, int, int) {
	word, start, end := wordBounds(input, cursor)
	if word == "" {
		return nil, start, end
	}

	cands := c.candidates(input, start)
	if len(cands) == 0 {
		return nil, start, end
	}

	return fuzzy.Find(word, cands), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	isFunc func(string) bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx, isFunc(match.Str))

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && used+w+lipgloss.Width(ellipsis) > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Functions are shown with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected, function bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if function {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
