package core_test

import (
	"fmt"

	"github.com/katalvlaran/lvstep/core"
)

// ExampleGraph_Clone shows that a working copy never leaks annotations back into the original.
func ExampleGraph_Clone() {
	g := core.NewGraph()
	_ = g.AddNode("A", nil)
	_ = g.AddNode("B", nil)
	_ = g.AddEdge("A", "B", map[string]interface{}{"weight": 3})

	work := g.Clone()
	work.ResetMarks(false)
	_ = work.Promote("A", core.StateVisited)

	fmt.Println(work.StateOf("A"), g.StateOf("A") == core.StateNone)
	// Output: visited true
}
