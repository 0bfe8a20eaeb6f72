package session

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/entity"
	"github.com/ardnew/scenic/host"
	"github.com/ardnew/scenic/lang"
	"github.com/ardnew/scenic/log"
	"github.com/ardnew/scenic/pkg"
	"github.com/ardnew/scenic/scene"
)

// HeaderID is the id of the expression declaring the document version.
const HeaderID = "header"

var headerPattern = regexp.MustCompile(`^version (\d+\.\d+\.\d+(?:-dev)?)$`)

// Session evaluates a document into a scene graph.
//
// A Session is not safe for concurrent use.
type Session struct {
	doc     *host.Document
	reg     *engine.Registry
	graph   *scene.Graph
	ev      *engine.Evaluator
	logger  log.Logger
	strict  bool
	version string
	header  error
	print   uint64
	batches int
}

// Option configures a [Session].
type Option func(*Session)

// WithLogger sets the logger for the session and everything it creates.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithStrictShapes rejects arguments whose shape does not fit their type.
func WithStrictShapes(strict bool) Option {
	return func(s *Session) { s.strict = strict }
}

// New returns a Session evaluating doc. The entity library is added to reg;
// a nil reg gets a fresh registry. The initial batch runs before New
// returns.
func New(doc *host.Document, reg *engine.Registry, opts ...Option) (*Session, error) {
	if reg == nil {
		reg = engine.NewRegistry()
	}

	if err := entity.Register(reg); err != nil {
		return nil, err
	}

	s := &Session{reg: reg}

	for _, opt := range opts {
		opt(s)
	}

	s.graph = scene.New(scene.WithLogger(s.logger))
	s.attach(doc)
	s.Sync()

	return s, nil
}

func (s *Session) attach(doc *host.Document) {
	s.doc = doc
	s.ev = engine.New(s.reg, doc, s.graph,
		engine.WithLogger(s.logger),
		engine.WithStrictShapes(s.strict),
	)

	doc.OnChange(func() {
		if s.doc == doc {
			s.Sync()
		}
	})
}

// Document returns the document being evaluated.
func (s *Session) Document() *host.Document { return s.doc }

// Graph returns the scene graph.
func (s *Session) Graph() *scene.Graph { return s.graph }

// Evaluator returns the evaluator.
func (s *Session) Evaluator() *engine.Evaluator { return s.ev }

// Registry returns the function registry.
func (s *Session) Registry() *engine.Registry { return s.reg }

// Batches returns the number of batches run.
func (s *Session) Batches() int { return s.batches }

// Version returns the version declared by the document header.
func (s *Session) Version() string { return s.version }

// Sync runs one batch over every scene expression of the document.
func (s *Session) Sync() {
	s.checkHeader()

	s.ev.StartBatch()

	for _, x := range s.doc.Expressions() {
		if x.ID == HeaderID || !lang.HasMarker(x.Text) {
			continue
		}

		s.ev.ProcessSourceExpression(x.Text, x.ID)
	}

	s.ev.EndBatch()

	s.print = s.doc.Fingerprint()
	s.batches++
}

// Reload replaces the document with doc. Nothing is evaluated when doc has
// the same content as the current document.
func (s *Session) Reload(doc *host.Document) bool {
	if doc.Fingerprint() == s.print {
		s.logger.Debug("document unchanged, skipping reload")

		return false
	}

	s.ev.Context().Reset()
	s.attach(doc)
	s.Sync()

	return true
}

// Errors returns every recorded error keyed by expression id, including
// header errors.
func (s *Session) Errors() map[string]string {
	errs := s.ev.Errors()
	if s.header != nil {
		errs[HeaderID] = s.header.Error()
	}

	return errs
}

// checkHeader validates the header expression against the module version.
func (s *Session) checkHeader() {
	s.header = nil

	x, ok := s.doc.Expression(HeaderID)
	if !ok {
		s.version = ""

		for _, e := range s.doc.Expressions() {
			if lang.HasMarker(e.Text) {
				s.logger.Debug("document has no header")

				break
			}
		}

		return
	}

	m := headerPattern.FindStringSubmatch(strings.TrimSpace(x.Text))
	if m == nil {
		s.version = ""
		s.header = ErrHeader.With(slog.String("text", x.Text))
		s.logger.Warn("invalid header", slog.Any("error", s.header))

		return
	}

	s.version = m[1]

	if major(s.version) != major(pkg.Version()) {
		s.logger.Warn("document version differs from scenic version",
			slog.String("document", s.version),
			slog.String("scenic", pkg.Version()),
		)
	}
}

func major(version string) string {
	m, _, _ := strings.Cut(version, ".")

	return m
}
