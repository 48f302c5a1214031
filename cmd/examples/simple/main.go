package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/chaincanvas/chaincanvas/internal/canvas"
	"github.com/chaincanvas/chaincanvas/internal/routing"
	"github.com/chaincanvas/chaincanvas/pkg/editor"
)

// printExecution pretends to dispatch the graph to a remote service and
// reports a canned result.
type printExecution struct{}

func (printExecution) Run(_ context.Context, nodes []*canvas.Node, edges []*canvas.Edge, name string) (editor.RunResult, error) {
	return editor.RunResult{
		Status: editor.RunSuccess,
		Log: []string{
			fmt.Sprintf("dispatched %q with %d nodes and %d edges", name, len(nodes), len(edges)),
		},
	}, nil
}

func main() {
	e, err := editor.New("peel-chain-demo", editor.WithExecution(printExecution{}))
	if err != nil {
		log.Fatalf("Failed to create editor: %v", err)
	}

	// Place an address input and a cluster query, then wire them up.
	addr, err := e.Place("single_address", 100, 100)
	if err != nil {
		log.Fatalf("Failed to place single_address: %v", err)
	}
	if err := e.Store().UpdateNodeConfig(addr.ID, "address", "1BoatSLRHtKNngkdXEeobR76b53LETtpyT"); err != nil {
		log.Fatalf("Failed to configure address: %v", err)
	}

	cluster, err := e.Place("cluster_info", 420, 100)
	if err != nil {
		log.Fatalf("Failed to place cluster_info: %v", err)
	}

	fmt.Printf("Ready before connecting: %v\n", e.CanExecute())

	// A string output into an address input is refused.
	if _, ok := e.Connect(addr.ID, "blockchain", cluster.ID, "address"); !ok {
		fmt.Println("Rejected: blockchain (string) -> address, as expected")
	}

	edge, ok := e.Connect(addr.ID, "address", cluster.ID, "address")
	if !ok {
		log.Fatal("Expected address -> address to be admitted")
	}
	fmt.Printf("Ready after connecting:  %v\n", e.CanExecute())

	// Bend the edge with a waypoint and print its rendered geometry.
	if _, err := e.InsertClip(edge.ID, routing.Point{X: 260, Y: 40}); err != nil {
		log.Fatalf("Failed to insert clip: %v", err)
	}
	path, err := e.Path(edge.ID)
	if err != nil {
		log.Fatalf("Failed to compute path: %v", err)
	}
	fmt.Printf("Edge path has %d segments\n", len(path))

	result, err := e.Run(context.Background())
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	fmt.Printf("Run %s:\n  %s\n", result.Status, strings.Join(result.Log, "\n  "))
}
