package mcts

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

const dotGraphName = "mcts"

// Dot renders the tree down to depth as a graphviz digraph. Terminal nodes are drawn as boxes.
func (t *Tree) Dot(depth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(dotGraphName); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}

	type item struct {
		id    Naughty
		depth int
	}
	stack := []item{{t.root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodeFromNaughty(it.id)

		if err := g.AddNode(dotGraphName, dotName(n.id), dotAttrs(n)); err != nil {
			return "", errors.Wrapf(err, "add node %d", n.id)
		}
		if n.parent.isValid() {
			if err := g.AddEdge(dotName(n.parent), dotName(n.id), true, nil); err != nil {
				return "", errors.Wrapf(err, "add edge %d -> %d", n.parent, n.id)
			}
		}
		if it.depth >= depth {
			continue
		}
		kids := t.Children(it.id)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, item{kids[i], it.depth + 1})
		}
	}
	return g.String(), nil
}

func dotName(id Naughty) string { return fmt.Sprintf("n%d", id) }

func dotAttrs(n *Node) map[string]string {
	move := n.move.String()
	if n.isRoot {
		move = "root"
	}
	attrs := map[string]string{
		"label": strconv.Quote(fmt.Sprintf("%s\nt=%.3f n=%d", move, n.t, n.n)),
	}
	if n.IsOver() {
		attrs["shape"] = "box"
	}
	return attrs
}
