// Package editor is the public surface of the graph-editing engine. It owns
// one store and one registry, exposes every mutation through a single API,
// and gates the execution adapter behind the readiness check.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/chaincanvas/chaincanvas/internal/canvas"
	"github.com/chaincanvas/chaincanvas/internal/catalog"
	"github.com/chaincanvas/chaincanvas/internal/connect"
	"github.com/chaincanvas/chaincanvas/internal/readiness"
	"github.com/chaincanvas/chaincanvas/internal/routing"
)

var (
	// ErrNoPersistence is returned by Save/Load when no persistence
	// adapter is configured.
	ErrNoPersistence = errors.New("no persistence adapter configured")

	// ErrNoExecution is returned by Run when no execution adapter is
	// configured.
	ErrNoExecution = errors.New("no execution adapter configured")
)

// NotReadyError is returned by Run when the graph has unmet required inputs.
type NotReadyError struct {
	Violations []readiness.Violation
}

func (e *NotReadyError) Error() string {
	if len(e.Violations) == 0 {
		return "graph is not ready: it has no nodes"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s.%s", v.NodeID, v.PinID)
	}
	return fmt.Sprintf("graph is not ready: unconnected required inputs: %s", strings.Join(parts, ", "))
}

// Editor wires the registry, store, validator, router and readiness check
// into one session.
type Editor struct {
	registry *catalog.Registry
	store    *canvas.Store
	style    routing.Style

	persistence PersistenceAdapter
	execution   ExecutionAdapter
	log         *slog.Logger

	// storedID tracks the persistence id once the graph has been saved.
	storedID string
}

// Option configures an Editor.
type Option func(*Editor)

// WithRegistry replaces the default built-in registry.
func WithRegistry(r *catalog.Registry) Option {
	return func(e *Editor) {
		e.registry = r
	}
}

// WithPersistence sets the persistence adapter.
func WithPersistence(p PersistenceAdapter) Option {
	return func(e *Editor) {
		e.persistence = p
	}
}

// WithExecution sets the execution adapter.
func WithExecution(x ExecutionAdapter) Option {
	return func(e *Editor) {
		e.execution = x
	}
}

// WithRouteStyle sets the edge routing style.
func WithRouteStyle(style routing.Style) Option {
	return func(e *Editor) {
		e.style = style
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Editor) {
		e.log = log
	}
}

// New creates an editing session. Without WithRegistry the embedded built-in
// catalog is loaded.
func New(name string, opts ...Option) (*Editor, error) {
	e := &Editor{
		style: routing.StyleSmooth,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		registry, err := catalog.NewBuiltinRegistry()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load built-in catalog")
		}
		e.registry = registry
	}
	e.store = canvas.NewStore(e.registry,
		canvas.WithName(name),
		canvas.WithPolicy(connect.Policy(e.registry.Lookup)),
		canvas.WithLogger(e.log),
	)
	return e, nil
}

// Registry exposes the node type catalog.
func (e *Editor) Registry() *catalog.Registry {
	return e.registry
}

// Store exposes the underlying state store.
func (e *Editor) Store() *canvas.Store {
	return e.store
}

// Place instantiates a node type at a world position.
func (e *Editor) Place(typeID string, x, y float64) (*canvas.Node, error) {
	return e.store.AddNode(typeID, canvas.Position{X: x, Y: y})
}

// Remove deletes a node and every edge touching it.
func (e *Editor) Remove(nodeID string) error {
	return e.store.RemoveNode(nodeID)
}

// Connect attempts to admit an edge between an output pin and an input pin.
// A rejection is reported as ok=false, never as an error.
func (e *Editor) Connect(source, sourceHandle, target, targetHandle string) (*canvas.Edge, bool) {
	return e.store.AddEdge(source, sourceHandle, target, targetHandle)
}

// Disconnect deletes an edge.
func (e *Editor) Disconnect(edgeID string) error {
	return e.store.RemoveEdge(edgeID)
}

// CanExecute reports whether the graph may legally run.
func (e *Editor) CanExecute() bool {
	return readiness.CanExecute(e.store.Nodes(), e.store.Edges(), e.registry.Lookup)
}

// Violations lists every unmet required input, for "why can't I run" UIs.
func (e *Editor) Violations() []readiness.Violation {
	return readiness.Check(e.store.Nodes(), e.store.Edges(), e.registry.Lookup)
}

// Path computes the rendered geometry for an edge, routing between the two
// endpoint node positions through the edge's waypoints.
func (e *Editor) Path(edgeID string) (routing.Path, error) {
	edge, ok := e.store.Edge(edgeID)
	if !ok {
		return nil, canvas.NewMutationError("Path", edgeID, canvas.ErrEdgeNotFound)
	}
	src, ok := e.store.Node(edge.Source)
	if !ok {
		return nil, canvas.NewMutationError("Path", edge.Source, canvas.ErrNodeNotFound)
	}
	dst, ok := e.store.Node(edge.Target)
	if !ok {
		return nil, canvas.NewMutationError("Path", edge.Target, canvas.ErrNodeNotFound)
	}
	return routing.ComputePath(
		routing.Point{X: src.Position.X, Y: src.Position.Y},
		routing.Point{X: dst.Position.X, Y: dst.Position.Y},
		edge.Data.Clips,
		e.style,
	), nil
}

// InsertClip adds a waypoint to an edge at a client (pixel) position,
// projected into world coordinates through the current viewport.
func (e *Editor) InsertClip(edgeID string, client routing.Point) (canvas.Clip, error) {
	world := routing.FromViewport(e.store.Viewport()).ToWorld(client)
	return e.store.AddClip(edgeID, world.X, world.Y)
}

// DragClip begins a pointer capture over a waypoint handle. Moves are
// applied through the store until the capture is released.
func (e *Editor) DragClip(edgeID, clipID string) *routing.Drag {
	return routing.StartDrag(edgeID, clipID,
		routing.FromViewport(e.store.Viewport()),
		e.store.MoveClip,
	)
}

// DeleteClip removes a waypoint through its dedicated control.
func (e *Editor) DeleteClip(edgeID, clipID string) error {
	return e.store.RemoveClip(edgeID, clipID)
}

// Save exports the graph through the persistence adapter: a create on first
// save, an update afterwards. A failed save never mutates the graph.
func (e *Editor) Save(ctx context.Context) (Stored, error) {
	if e.persistence == nil {
		return Stored{}, ErrNoPersistence
	}
	snap := e.store.ExportSnapshot()

	var stored Stored
	var err error
	if e.storedID == "" {
		stored, err = e.persistence.Create(ctx, snap)
	} else {
		stored, err = e.persistence.Update(ctx, e.storedID, snap)
	}
	if err != nil {
		return Stored{}, errors.Wrapf(err, "failed to save graph %q", snap.Name)
	}
	e.storedID = stored.ID
	return stored, nil
}

// Load replaces the in-memory graph with a stored snapshot. On adapter or
// validation failure the current graph is left untouched.
func (e *Editor) Load(ctx context.Context, id string) error {
	if e.persistence == nil {
		return ErrNoPersistence
	}
	stored, err := e.persistence.Get(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "failed to load graph %q", id)
	}
	if err := e.store.ReplaceSnapshot(stored.Snapshot); err != nil {
		return err
	}
	e.storedID = stored.ID
	return nil
}

// Run dispatches the graph through the execution adapter. It refuses with a
// NotReadyError unless every required input is connected; adapter failures
// surface as errors and never mutate the graph.
func (e *Editor) Run(ctx context.Context) (RunResult, error) {
	if e.execution == nil {
		return RunResult{}, ErrNoExecution
	}

	nodes, edges := e.store.Nodes(), e.store.Edges()
	if !readiness.CanExecute(nodes, edges, e.registry.Lookup) {
		return RunResult{}, &NotReadyError{
			Violations: readiness.Check(nodes, edges, e.registry.Lookup),
		}
	}

	result, err := e.execution.Run(ctx, nodes, edges, e.store.Name())
	if err != nil {
		return RunResult{}, errors.Wrapf(err, "failed to run graph %q", e.store.Name())
	}
	return result, nil
}

// RefreshProviders replaces the registry's provider definitions from the
// given source in one atomic table swap.
func (e *Editor) RefreshProviders(ctx context.Context, src catalog.Source) error {
	if err := catalog.Refresh(ctx, e.registry, src); err != nil {
		return err
	}
	e.log.Info("provider definitions refreshed", "types", e.registry.Len())
	return nil
}
