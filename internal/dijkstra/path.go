package dijkstra

import "github.com/vanshika/pathfinder/internal/domain"

// ReconstructPath walks predecessor links back from end and returns the route
// start…end. It returns an empty path when the walk does not terminate at start.
func ReconstructPath(prev domain.Predecessors, start, end domain.NodeID) domain.Path {
	if end == domain.NoPredecessor {
		return domain.Path{}
	}

	// A well-formed map visits each node at most once.
	limit := len(prev) + 1
	var path domain.Path
	for cur := end; cur != domain.NoPredecessor; cur = prev[cur] {
		if len(path) == limit {
			return domain.Path{}
		}
		path = append(path, cur)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if len(path) > 0 && path[0] == start {
		return path
	}
	return domain.Path{}
}
