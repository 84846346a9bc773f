package dfs_test

import (
	"fmt"

	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/dfs"
	"github.com/katalvlaran/lvstep/stepper"
)

// ExampleStart walks a small tree and prints each node as it is popped.
func ExampleStart() {
	g := core.NewGraph()
	for _, id := range []string{"root", "left", "right", "leaf"} {
		_ = g.AddNode(id, nil)
	}
	_ = g.AddEdge("root", "left", nil)
	_ = g.AddEdge("root", "right", nil)
	_ = g.AddEdge("left", "leaf", nil)

	r, err := dfs.Start(g, "root")
	if err != nil {
		fmt.Println(err)
		return
	}
	for more := true; more; {
		st := r.State()
		before := st.Phase
		if more, err = r.Advance(); err != nil {
			fmt.Println(err)
			return
		}
		if before == stepper.PhasePop && st.Phase == stepper.PhaseExpand {
			fmt.Println(st.Current)
		}
	}
	// Output:
	// root
	// right
	// left
	// leaf
}
