package dijkstra_test

import (
	"fmt"

	"github.com/vanshika/pathfinder/internal/dijkstra"
	"github.com/vanshika/pathfinder/internal/domain"
)

func ExampleSolve() {
	g := domain.NewGraph(3)
	for _, id := range []domain.NodeID{"1", "2", "3"} {
		g.AddNode(id)
	}
	g.SetEdge("1", "3", 10)
	g.SetEdge("1", "2", 1)
	g.SetEdge("2", "3", 1)

	res, err := dijkstra.Solve(g, "1")
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, id := range res.Order {
		fmt.Printf("%s: %v via %s\n", id, res.Distances[id], res.Paths[id])
	}
	// Output:
	// 1: 0 via 1
	// 2: 1 via 1 → 2
	// 3: 2 via 1 → 2 → 3
}
