package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/ardnew/scenic/engine"
)

// functionCall describes the call surrounding the cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall finds the innermost unclosed call before cursor and the
// index of the argument being typed. The name may be written plainly or as
// \operatorname{Name}.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open := -1
	depth := 0

scan:
	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')', ']':
			depth++
		case '[':
			depth--
		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	end := open
	if end > 0 && input[end-1] == '}' {
		end--
	}

	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	name := input[start:end]
	if name == "" {
		return functionCall{}
	}

	argIndex := 0
	depth = 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// signatureParts returns the rendered parameters of d.
func signatureParts(d *engine.Descriptor) []string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.String()
	}

	return params
}

// renderSignatureHint renders the signature of d with the parameter at argIdx
// highlighted.
func renderSignatureHint(d *engine.Descriptor, argIdx int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(d.Name))
	b.WriteString(signatureStyle.Render("("))

	for i, p := range signatureParts(d) {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == argIdx {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	b.WriteString(signatureStyle.Render(") " + d.Type.String()))

	return b.String()
}
