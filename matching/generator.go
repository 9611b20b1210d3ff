package matching

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

const (
	// minParticipants rejects the degenerate sizes: below 3 the only
	// derangement is a mutual swap, which is not a meaningful draw.
	minParticipants = 3

	// defaultMaxAttempts bounds the randomized phase. Uniform sampling is
	// cheap for small groups; dense constraint sets fall through to the
	// deterministic matching instead of burning more attempts.
	defaultMaxAttempts = 1000
)

var (
	// ErrInvalidInput flags malformed input rejected before any search.
	ErrInvalidInput = fmt.Errorf("invalid matching input")

	// ErrInfeasible means no assignment satisfies the constraint set.
	// Expected outcome, not a failure: the organizer has to relax exclusions.
	ErrInfeasible = fmt.Errorf("no feasible assignment")
)

// InfeasibleError carries the offending participant when determinable.
type InfeasibleError struct {
	// GiverID is the participant that could not be matched, empty when the
	// failure is global rather than attributable to one participant.
	GiverID ID
}

func (e *InfeasibleError) Error() string {
	if e.GiverID == "" {
		return ErrInfeasible.Error()
	}
	return fmt.Sprintf("%v: participant %q has no allowed receiver", ErrInfeasible, e.GiverID)
}

func (e *InfeasibleError) Unwrap() error { return ErrInfeasible }

// Generator produces assignments for one draw. It is cheap to construct,
// so callers running concurrent draws should build one per draw rather
// than share an instance: the embedded rand.Rand is not goroutine-safe.
type Generator struct {
	rng          *rand.Rand
	maxAttempts  int
	forbidMutual bool
}

type Option func(*Generator)

// WithRand injects the random source. Tests pass a seeded source to make
// the randomized phase deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithMaxAttempts overrides the randomized attempt budget. Zero skips the
// randomized phase entirely and goes straight to the deterministic fallback.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = n }
}

// WithoutMutualPairs forbids A → B and B → A from appearing together.
// Default policy allows them, matching the historical behavior of the draw.
func WithoutMutualPairs() Option {
	return func(g *Generator) { g.forbidMutual = true }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a total giver → receiver bijection with no fixed points
// and no forbidden pairs, or an error wrapping ErrInvalidInput or
// ErrInfeasible. Constraints and history may be nil.
//
// The search runs in two phases: bounded randomized shuffle-and-validate,
// uniform over valid derangements when constraints are sparse, then a
// deterministic augmenting-path maximum matching whose output depends only
// on the sorted participant IDs.
func (g *Generator) Generate(participants []Participant, constraints *ConstraintSet, history []Pair) (Assignment, error) {
	if err := validateInput(participants, constraints); err != nil {
		return nil, err
	}

	merged := buildConstraints(participants, constraints)
	prior := newHistorySet(history)

	ids := make([]ID, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	allowed := func(giver, receiver ID) bool {
		return giver != receiver &&
			!merged.Forbidden(giver, receiver) &&
			!prior.contains(giver, receiver)
	}

	if assignment, ok := g.randomizedSearch(ids, allowed); ok {
		return assignment, nil
	}

	// Randomized exhaustion is not an error; the exact fallback decides.
	return g.exactSearch(ids, allowed)
}

// randomizedSearch draws random permutations and keeps the first one that
// validates. Fails soft after the attempt budget.
func (g *Generator) randomizedSearch(ids []ID, allowed func(giver, receiver ID) bool) (Assignment, bool) {
	receivers := make([]ID, len(ids))
	copy(receivers, ids)

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		g.rng.Shuffle(len(receivers), func(i, j int) {
			receivers[i], receivers[j] = receivers[j], receivers[i]
		})
		if g.validPermutation(ids, receivers, allowed) {
			assignment := make(Assignment, len(ids))
			for i, giver := range ids {
				assignment[i] = Pair{Giver: giver, Receiver: receivers[i]}
			}
			return assignment, true
		}
	}
	return nil, false
}

func (g *Generator) validPermutation(ids, receivers []ID, allowed func(giver, receiver ID) bool) bool {
	position := make(map[ID]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}
	for i, giver := range ids {
		if !allowed(giver, receivers[i]) {
			return false
		}
		if g.forbidMutual && receivers[position[receivers[i]]] == giver {
			return false
		}
	}
	return true
}

// exactSearch runs the deterministic fallback: maximum bipartite matching
// over the allowed-pair graph, givers processed in sorted ID order so the
// result is reproducible for golden-output tests.
func (g *Generator) exactSearch(ids []ID, allowed func(giver, receiver ID) bool) (Assignment, error) {
	adjacency := make(map[ID][]ID, len(ids))
	for _, giver := range ids {
		for _, receiver := range ids {
			if allowed(giver, receiver) {
				adjacency[giver] = append(adjacency[giver], receiver)
			}
		}
		if len(adjacency[giver]) == 0 {
			return nil, &InfeasibleError{GiverID: giver}
		}
	}

	matched, ok := maximumMatching(ids, adjacency)
	if !ok {
		return nil, &InfeasibleError{}
	}

	if g.forbidMutual && !repairMutualPairs(ids, matched, allowed) {
		return nil, &InfeasibleError{}
	}

	assignment := make(Assignment, 0, len(ids))
	for _, giver := range ids {
		assignment = append(assignment, Pair{Giver: giver, Receiver: matched[giver]})
	}
	return assignment, nil
}

// repairMutualPairs removes mutual pairs from a perfect matching by swapping
// receivers between two assignments, keeping every edge allowed. Returns
// false when some mutual pair cannot be broken without violating constraints.
func repairMutualPairs(ids []ID, matched map[ID]ID, allowed func(giver, receiver ID) bool) bool {
	countMutual := func() int {
		n := 0
		for _, giver := range ids {
			if matched[matched[giver]] == giver {
				n++
			}
		}
		return n
	}

	for countMutual() > 0 {
		improved := false
		for _, x := range ids {
			y := matched[x]
			if matched[y] != x {
				continue
			}
			for _, a := range ids {
				if a == x || a == y {
					continue
				}
				b := matched[a]
				if !allowed(x, b) || !allowed(a, y) {
					continue
				}
				before := countMutual()
				matched[x], matched[a] = b, y
				if countMutual() < before {
					improved = true
					break
				}
				matched[x], matched[a] = y, b
			}
			if improved {
				break
			}
		}
		if !improved {
			return false
		}
	}
	return true
}
