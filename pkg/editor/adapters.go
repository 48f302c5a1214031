package editor

import (
	"context"

	"github.com/chaincanvas/chaincanvas/internal/canvas"
)

// Summary is one entry in a persistence listing.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stored is a snapshot together with its persistence id.
type Stored struct {
	ID       string          `json:"id"`
	Snapshot canvas.Snapshot `json:"snapshot"`
}

// PersistenceAdapter saves and loads named graphs. The engine treats it as
// pure load-in/export-out: no retries, no caching.
type PersistenceAdapter interface {
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, id string) (Stored, error)
	Create(ctx context.Context, snap canvas.Snapshot) (Stored, error)
	Update(ctx context.Context, id string, snap canvas.Snapshot) (Stored, error)
	Delete(ctx context.Context, id string) error
}

// RunStatus is the terminal state of one dispatched run.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunFailure RunStatus = "failure"
)

// RunResult is what the execution adapter reports back.
type RunResult struct {
	Status RunStatus `json:"status"`
	Log    []string  `json:"log"`
	Error  string    `json:"error,omitempty"`
}

// ExecutionAdapter dispatches a graph for remote execution. The engine's
// only obligation is to gate calls behind the readiness check.
type ExecutionAdapter interface {
	Run(ctx context.Context, nodes []*canvas.Node, edges []*canvas.Edge, name string) (RunResult, error)
}
