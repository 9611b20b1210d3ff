package matching

// maximumMatching computes a maximum bipartite matching between givers and
// receivers using Kuhn's augmenting-path algorithm. Adjacency lists must be
// pre-sorted by the caller for deterministic output; givers are processed in
// the order of ids. Returns the giver → receiver map and whether the
// matching is perfect.
//
// Worst case O(V * E), which stays comfortably inside the latency budget for
// draws of a few hundred participants.
func maximumMatching(ids []ID, adjacency map[ID][]ID) (map[ID]ID, bool) {
	receiverOf := make(map[ID]ID, len(ids)) // giver -> receiver
	giverOf := make(map[ID]ID, len(ids))    // receiver -> giver

	var augment func(giver ID, visited map[ID]struct{}) bool
	augment = func(giver ID, visited map[ID]struct{}) bool {
		for _, receiver := range adjacency[giver] {
			if _, seen := visited[receiver]; seen {
				continue
			}
			visited[receiver] = struct{}{}

			current, taken := giverOf[receiver]
			if !taken || augment(current, visited) {
				giverOf[receiver] = giver
				receiverOf[giver] = receiver
				return true
			}
		}
		return false
	}

	size := 0
	for _, giver := range ids {
		if augment(giver, make(map[ID]struct{})) {
			size++
		}
	}
	return receiverOf, size == len(ids)
}
