package main

import (
	"nodegraph/internal/geom"
	"nodegraph/internal/scene"
)

// buildDemo adds two nodes, each with an "in" socket and an "out" plug,
// and feeds the first node's socket from the second node's plug.
func buildDemo(g *scene.Graph, port scene.PortStyle) error {
	positions := []geom.Point{geom.Pt(120, 20), geom.Pt(20, 20)}
	nodes := make([]scene.NodeID, 0, len(positions))
	for i, p := range positions {
		id, err := g.CreateNode(geom.R(0, 0, defaultNodeSize, defaultNodeSize), scene.WithTitle(string(rune('A'+i))))
		if err != nil {
			return err
		}
		if err := g.SetNodePosition(id, p); err != nil {
			return err
		}
		if _, err := g.CreatePlug(id, "out", port.Shape()); err != nil {
			return err
		}
		if _, err := g.CreateSocket(id, "in", port.Shape()); err != nil {
			return err
		}
		nodes = append(nodes, id)
	}

	in, err := g.Socket(nodes[0], "in")
	if err != nil {
		return err
	}
	out, err := g.Plug(nodes[1], "out")
	if err != nil {
		return err
	}
	_, err = g.Connect(in, out)
	return err
}
