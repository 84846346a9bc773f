package dijkstra

import "github.com/katalvlaran/lvstep/core"

// Reconstruct follows parent links from node back to a node without a parent
// and returns the keys in source→node order. Unknown nodes yield nil.
func Reconstruct(g *core.Graph, node string) []string {
	if !g.HasNode(node) {
		return nil
	}
	var path []string
	seen := make(map[string]bool)
	for cur := node; ; {
		if seen[cur] {
			// relaxation never produces a parent cycle; hand-edited annotations can
			return nil
		}
		seen[cur] = true
		path = append(path, cur)
		n, err := g.Node(cur)
		if err != nil || !n.Mark.HasParent {
			break
		}
		cur = n.Mark.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
