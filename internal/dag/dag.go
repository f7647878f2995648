// SPDX-License-Identifier: MPL-2.0

// Package dag orders compilation units so that every unit comes after the
// units whose artifacts it links against.
package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is the sentinel error wrapped by CycleError.
var ErrCycle = errors.New("dependency cycle")

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError[N comparable] struct {
		// Cycle lists the nodes left unordered, in insertion order.
		Cycle []N
	}

	// Graph is a directed graph of "must be built before" relationships:
	// an edge from A to B means A's artifact has to exist before B is built.
	Graph[N comparable] struct {
		adjacency map[N][]N
		// nodes keeps insertion order for deterministic output.
		nodes   []N
		nodeSet map[N]struct{}
	}
)

func (e *CycleError[N]) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, n := range e.Cycle {
		parts[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(parts, " -> "))
}

// Unwrap returns ErrCycle for errors.Is checks.
func (e *CycleError[N]) Unwrap() error { return ErrCycle }

// New creates an empty Graph.
func New[N comparable]() *Graph[N] {
	return &Graph[N]{
		adjacency: make(map[N][]N),
		nodeSet:   make(map[N]struct{}),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op.
func (g *Graph[N]) AddNode(n N) {
	if g.Has(n) {
		return
	}
	g.nodeSet[n] = struct{}{}
	g.nodes = append(g.nodes, n)
}

// Has reports whether n is in the graph.
func (g *Graph[N]) Has(n N) bool {
	_, ok := g.nodeSet[n]
	return ok
}

// AddEdge records that from must be built before to.
// Both nodes are implicitly added if they don't exist.
func (g *Graph[N]) AddEdge(from, to N) {
	g.AddNode(from)
	g.AddNode(to)
	g.adjacency[from] = append(g.adjacency[from], to)
}

// TopologicalSort returns a build order using Kahn's algorithm.
// Nodes at the same level keep the order in which they were first added,
// so a graph without edges sorts to its insertion order.
func (g *Graph[N]) TopologicalSort() ([]N, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[N]int, len(g.nodes))
	for _, neighbors := range g.adjacency {
		for _, neighbor := range neighbors {
			inDegree[neighbor]++
		}
	}

	queue := make([]N, 0, len(g.nodes))
	for _, n := range g.nodes {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	result := make([]N, 0, len(g.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		result = append(result, n)

		for _, neighbor := range g.adjacency[n] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycle []N
		for _, n := range g.nodes {
			if inDegree[n] > 0 {
				cycle = append(cycle, n)
			}
		}
		return nil, &CycleError[N]{Cycle: cycle}
	}
	return result, nil
}
