package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/log"
	"github.com/ardnew/scenic/session"
)

// ctrlCommands are the commands accepted after ':'.
var ctrlCommands = []string{
	"clear", "edit", "errors", "help", "list", "quit", "rm", "scene", "vars",
}

func helpMessage() string {
	return `
Input:
  @3 <source>      append a scene expression
  name = expr      set a host variable
  expr             evaluate a host expression

Commands:
  :help            print this cruft
  :vars            list host variables and their values
  :list            list expressions
  :errors          list errors by expression id
  :scene           dump the scene
  :rm <id>...      remove expressions
  :edit            edit the document in $EDITOR
  :clear           clear screen
  :quit            exit

Keys:
  Tab / Shift-Tab  cycle completions, Space or Enter accepts
  Up / Down        history
  Ctrl+C on an empty line, or Ctrl+D, exits
`
}

// reply is the outcome of one input line.
type reply struct {
	echo  string
	lines []string
	err   error
	quit  bool
	clear bool
	edit  bool
}

// shell interprets input lines against a session.
type shell struct {
	ctx    context.Context
	sess   *session.Session
	logger log.Logger
}

func (s *shell) exec(input string) reply {
	input = strings.TrimSpace(input)
	if input == "" {
		return reply{}
	}

	if cmd, ok := strings.CutPrefix(input, ":"); ok {
		s.logger.TraceContext(s.ctx, "repl command", slog.String("input", cmd))

		return s.command(strings.Fields(cmd))
	}

	doc := s.sess.Document()

	if lang.HasMarker(input) {
		id := doc.AppendExpression(input)
		s.logger.TraceContext(s.ctx, "repl expression", slog.String("id", id))

		r := reply{echo: input}
		if msg, bad := s.sess.Errors()[id]; bad {
			r.lines = []string{errorStyle.Render(id + ": " + msg)}

			return r
		}

		ctx := s.sess.Evaluator().Context()
		for _, v := range ctx.ExprVariables(id) {
			if n, ok := ctx.Lookup(v); ok {
				r.lines = append(r.lines, fmt.Sprintf("%s %s %s",
					resultStyle.Render(v), hintStyle.Render(n.State().String()),
					hintStyle.Render(fmt.Sprintf("(%d)", len(n.Children())))))
			}
		}

		return r
	}

	if name, src, ok := assignment(input); ok {
		if err := doc.SetVariable(name, src); err != nil {
			return reply{echo: input, err: err}
		}

		return reply{echo: input, lines: []string{
			resultStyle.Render(name + " = " + doc.Value(name).Value().String()),
		}}
	}

	obs, err := doc.Eval(input)
	if err != nil {
		return reply{echo: input, err: err}
	}

	return reply{echo: input, lines: []string{resultStyle.Render(obs.Value().String())}}
}

func (s *shell) command(args []string) reply {
	if len(args) == 0 {
		return reply{}
	}

	r := reply{echo: ":" + strings.Join(args, " ")}
	doc := s.sess.Document()

	switch args[0] {
	case "q", "quit", "exit":
		r.quit = true

	case "h", "help":
		r.lines = []string{helpMessage()}

	case "vars":
		for _, name := range doc.Variables() {
			src, _ := doc.Variable(name)
			r.lines = append(r.lines, fmt.Sprintf("  %s = %s %s",
				name, src, hintStyle.Render("→ "+doc.Value(name).Value().String())))
		}

	case "l", "list":
		errs := s.sess.Errors()
		for _, x := range doc.Expressions() {
			line := fmt.Sprintf("  %s %s", hintStyle.Render(x.ID+":"), x.Text)
			if _, bad := errs[x.ID]; bad {
				line += " " + errorStyle.Render("✗")
			}

			r.lines = append(r.lines, line)
		}

	case "errors":
		errs := s.sess.Errors()
		for _, id := range slices.Sorted(maps.Keys(errs)) {
			r.lines = append(r.lines, errorStyle.Render(fmt.Sprintf("  %s: %s", id, errs[id])))
		}

		if len(r.lines) == 0 {
			r.lines = []string{hintStyle.Render("no errors")}
		}

	case "scene":
		var b strings.Builder
		if err := s.sess.Graph().Dump(&b); err != nil {
			r.err = err
		}

		r.lines = []string{strings.TrimRight(b.String(), "\n")}

	case "rm":
		if len(args) < 2 {
			r.err = ErrMissingArgument.With(slog.String("command", "rm"))

			break
		}

		for _, id := range args[1:] {
			if !doc.RemoveExpression(id) {
				r.err = ErrUnknownExpression.With(slog.String("id", id))

				break
			}
		}

	case "c", "clear":
		r.clear = true

	case "e", "edit":
		r.edit = true

	default:
		r.err = ErrUnknownCommand.With(slog.String("command", args[0]))
	}

	return r
}

// assignment splits "name = expr" where name is an identifier and the '=' is
// not part of a comparison operator.
func assignment(input string) (name, src string, ok bool) {
	i := strings.IndexByte(input, '=')
	if i <= 0 || strings.HasPrefix(input[i:], "==") {
		return "", "", false
	}

	name = strings.TrimSpace(input[:i])
	src = strings.TrimSpace(input[i+1:])

	if name == "" || src == "" {
		return "", "", false
	}

	for j, r := range name {
		if r != '_' && !unicode.IsLetter(r) && (j == 0 || !unicode.IsDigit(r)) {
			return "", "", false
		}
	}

	return name, src, true
}
