package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvstep/codec"
	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/engine"
	"github.com/katalvlaran/lvstep/stepper"
)

// NewRunCmd creates the "run" subcommand: an offline traversal printed step by step.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a traversal over a graph file and print every step",
		Example: `  stepgraph run --graph graph.json --algorithm bfs --source A
  stepgraph run --graph graph.json --algorithm dijkstra --source A --target D --json`,
		RunE: runRun,
	}

	cmd.Flags().String("graph", "", "Path to a graph JSON file ('-' for stdin)")
	cmd.Flags().String("algorithm", "bfs", "Algorithm: "+strings.Join(engine.Algorithms(), ", "))
	cmd.Flags().String("source", "", "Source node id")
	cmd.Flags().String("target", "", "Target node id (dijkstra)")
	cmd.Flags().Bool("json", false, "Emit one JSON object per step")
	_ = cmd.MarkFlagRequired("graph")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

// stepLine is the --json output record.
type stepLine struct {
	Step         int               `json:"step"`
	PhaseID      int               `json:"phase_id"`
	Phase        string            `json:"phase"`
	Current      *string           `json:"current_node"`
	Finished     bool              `json:"finished"`
	States       map[string]string `json:"states"`
	ShortestPath []string          `json:"shortest_path,omitempty"`
}

func runRun(cmd *cobra.Command, _ []string) error {
	graphPath, _ := cmd.Flags().GetString("graph")
	algorithm, _ := cmd.Flags().GetString("algorithm")
	source, _ := cmd.Flags().GetString("source")
	target, _ := cmd.Flags().GetString("target")
	asJSON, _ := cmd.Flags().GetBool("json")

	data, err := readGraph(cmd.InOrStdin(), graphPath)
	if err != nil {
		return err
	}
	g, err := codec.Decode(data)
	if err != nil {
		return err
	}

	results, err := engine.Run(g, algorithm, stepper.Params{Source: source, Target: target})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	for i, res := range results {
		if asJSON {
			line := stepLine{
				Step:     i + 1,
				PhaseID:  res.PhaseID,
				Phase:    res.Phase.String(),
				Finished: res.Finished,
				States:   states(res.Graph),
			}
			if res.HasCurrent {
				cur := res.Current
				line.Current = &cur
			}
			if res.Finished {
				line.ShortestPath = res.ShortestPath
			}
			if err = enc.Encode(line); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "%3d  %-6s  %-8s  %s\n", i+1, res.Phase, current(res), summary(res.Graph))
	}

	if !asJSON && algorithm == "dijkstra" && len(results) > 0 {
		final := results[len(results)-1]
		if len(final.ShortestPath) == 0 {
			fmt.Fprintf(out, "no path from %s to %s\n", source, target)
		} else {
			fmt.Fprintf(out, "shortest path: %s (distance %v)\n",
				strings.Join(final.ShortestPath, " → "), final.Graph.DistanceOf(target))
		}
	}

	return nil
}

func readGraph(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}

	return data, nil
}

func current(res engine.Result) string {
	if !res.HasCurrent {
		return "-"
	}

	return res.Current
}

func states(g *core.Graph) map[string]string {
	out := make(map[string]string, g.NodeCount())
	for _, id := range g.Nodes() {
		out[id] = g.StateOf(id).String()
	}

	return out
}

// summary renders "id=state" pairs in node order.
func summary(g *core.Graph) string {
	parts := make([]string, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		parts = append(parts, id+"="+g.StateOf(id).String())
	}

	return strings.Join(parts, " ")
}
