package scene

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/scenic/engine"
	"github.com/ardnew/scenic/log"
)

// Cameras is implemented by scenes that own a camera. Owner identifies the
// entity setting the camera so that only it can reset it.
type Cameras interface {
	SetCamera(owner any, c Camera)
	ResetCamera(owner any)
}

// Fogs is implemented by scenes that support fog.
type Fogs interface {
	SetFog(owner any, f Fog)
	ClearFog(owner any)
}

// Graph is an in-memory [engine.Scene].
//
// A Graph is safe for concurrent use.
type Graph struct {
	mu      sync.Mutex
	objects []engine.Handle
	camera  *Camera
	fog     *Fog
	cowner  any
	fowner  any
	renders int
	logger  log.Logger
}

// Option configures a [Graph].
type Option func(*Graph)

// WithLogger sets the logger for scene events.
func WithLogger(logger log.Logger) Option {
	return func(g *Graph) { g.logger = logger }
}

// New returns an empty Graph.
func New(opts ...Option) *Graph {
	g := &Graph{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Add implements [engine.Scene].
func (g *Graph) Add(h engine.Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !slices.Contains(g.objects, h) {
		g.objects = append(g.objects, h)
	}
}

// Remove implements [engine.Scene].
func (g *Graph) Remove(h engine.Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.objects = slices.DeleteFunc(g.objects, func(o engine.Handle) bool {
		return o == h
	})
}

// Rerender implements [engine.Scene].
func (g *Graph) Rerender() {
	g.mu.Lock()
	g.renders++
	g.mu.Unlock()
}

// SetCamera makes c the active camera. The last owner to set a camera wins.
func (g *Graph) SetCamera(owner any, c Camera) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.camera != nil && g.cowner != owner {
		g.logger.Warn("multiple cameras in scene, using the latest",
			slog.String("camera", c.String()))
	}

	g.camera, g.cowner = &c, owner
}

// ResetCamera restores [DefaultCamera] if owner set the active camera.
func (g *Graph) ResetCamera(owner any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cowner == owner {
		g.camera, g.cowner = nil, nil
	}
}

// SetFog replaces the scene fog.
func (g *Graph) SetFog(owner any, f Fog) {
	g.mu.Lock()
	g.fog, g.fowner = &f, owner
	g.mu.Unlock()
}

// ClearFog removes the scene fog if owner set it.
func (g *Graph) ClearFog(owner any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fowner == owner {
		g.fog, g.fowner = nil, nil
	}
}

// Objects returns the objects currently in the scene.
func (g *Graph) Objects() []engine.Handle {
	g.mu.Lock()
	defer g.mu.Unlock()

	return slices.Clone(g.objects)
}

// Camera returns the active camera and whether it was set explicitly.
func (g *Graph) Camera() (Camera, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.camera == nil {
		return DefaultCamera, false
	}

	return *g.camera, true
}

// Fog returns the scene fog.
func (g *Graph) Fog() (Fog, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fog == nil {
		return Fog{}, false
	}

	return *g.fog, true
}

// Renders returns the number of redraws requested.
func (g *Graph) Renders() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.renders
}

// Snapshot is a serializable view of a [Graph].
type Snapshot struct {
	Objects []string `json:"objects"        yaml:"objects"`
	Camera  Camera   `json:"camera"         yaml:"camera"`
	Fog     *Fog     `json:"fog,omitempty"  yaml:"fog,omitempty"`
	Renders int      `json:"renders"        yaml:"renders"`
}

// Snapshot returns the current state of g.
func (g *Graph) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Objects: make([]string, len(g.objects)),
		Camera:  DefaultCamera,
		Renders: g.renders,
	}

	for i, o := range g.objects {
		s.Objects[i] = Describe(o)
	}

	if g.camera != nil {
		s.Camera = *g.camera
	}

	if g.fog != nil {
		f := *g.fog
		s.Fog = &f
	}

	return s
}

// Describe returns a one-line description of h.
func Describe(h engine.Handle) string {
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", h)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// Dump writes a styled listing of g to w.
func (g *Graph) Dump(w io.Writer) error {
	s := g.Snapshot()

	var b strings.Builder

	b.WriteString(headerStyle.Render("scene"))
	b.WriteString(labelStyle.Render(fmt.Sprintf(" (%d objects, %d redraws)",
		len(s.Objects), s.Renders)))
	b.WriteByte('\n')

	for _, o := range s.Objects {
		b.WriteString("  ")
		b.WriteString(itemStyle.Render(o))
		b.WriteByte('\n')
	}

	b.WriteString(labelStyle.Render("  camera: "))
	b.WriteString(itemStyle.Render(s.Camera.String()))
	b.WriteByte('\n')

	if s.Fog != nil {
		b.WriteString(labelStyle.Render("  fog: "))
		b.WriteString(itemStyle.Render(s.Fog.String()))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())

	return err
}
