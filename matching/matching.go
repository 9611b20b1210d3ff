// Package matching implements the Secret Santa assignment generator.
//
// Given a set of participants and a symmetric must-not-pair constraint set,
// it produces a derangement-like bijection from givers to receivers, or
// reports that no such assignment exists. The package is pure: no I/O, no
// shared mutable state, randomness injected by the caller.
package matching

import (
	"fmt"
	"sort"
)

// ID identifies a participant within one draw.
type ID string

// Participant is the matching-level view of a draw participant.
// Household members are never matched together; Excludes lists explicit
// must-not-give-to participants and is symmetrized when constraints are built.
type Participant struct {
	ID        ID
	Name      string
	Household string
	Excludes  []ID
}

// Pair is one directed assignment edge: Giver offers a gift to Receiver.
type Pair struct {
	Giver    ID
	Receiver ID
}

// Assignment is a total bijection from givers to receivers, ordered by
// giver ID so identical inputs always serialize identically.
type Assignment []Pair

// ReceiverOf returns the receiver assigned to the given giver.
func (a Assignment) ReceiverOf(giver ID) (ID, bool) {
	for _, p := range a {
		if p.Giver == giver {
			return p.Receiver, true
		}
	}
	return "", false
}

// ConstraintSet is a symmetric must-not-pair relation. Forbidding (a, b)
// always forbids (b, a) as well, so an asymmetric set cannot be expressed.
type ConstraintSet struct {
	forbidden map[ID]map[ID]struct{}
}

func NewConstraintSet() *ConstraintSet {
	return &ConstraintSet{forbidden: make(map[ID]map[ID]struct{})}
}

// Forbid marks a and b as a must-not-pair in both directions.
// Self pairs are rejected at validation time, not here.
func (c *ConstraintSet) Forbid(a, b ID) {
	c.add(a, b)
	c.add(b, a)
}

func (c *ConstraintSet) add(a, b ID) {
	if c.forbidden[a] == nil {
		c.forbidden[a] = make(map[ID]struct{})
	}
	c.forbidden[a][b] = struct{}{}
}

// Forbidden reports whether giver → receiver is a forbidden edge.
func (c *ConstraintSet) Forbidden(giver, receiver ID) bool {
	if c == nil {
		return false
	}
	_, ok := c.forbidden[giver][receiver]
	return ok
}

// Pairs returns the forbidden pairs with each unordered pair listed once,
// sorted for stable output. Used for logging and error context.
func (c *ConstraintSet) Pairs() []Pair {
	if c == nil {
		return nil
	}
	seen := make(map[Pair]struct{})
	var pairs []Pair
	for a, others := range c.forbidden {
		for b := range others {
			lo, hi := a, b
			if hi < lo {
				lo, hi = hi, lo
			}
			p := Pair{Giver: lo, Receiver: hi}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Giver != pairs[j].Giver {
			return pairs[i].Giver < pairs[j].Giver
		}
		return pairs[i].Receiver < pairs[j].Receiver
	})
	return pairs
}

// buildConstraints merges the caller-provided set with the constraints
// implied by participant data: same-household pairs and explicit exclusions.
// The result is always symmetric by construction.
func buildConstraints(participants []Participant, extra *ConstraintSet) *ConstraintSet {
	merged := NewConstraintSet()
	if extra != nil {
		for _, p := range extra.Pairs() {
			merged.Forbid(p.Giver, p.Receiver)
		}
	}

	byHousehold := make(map[string][]ID)
	for _, p := range participants {
		if p.Household != "" {
			byHousehold[p.Household] = append(byHousehold[p.Household], p.ID)
		}
		for _, excluded := range p.Excludes {
			merged.Forbid(p.ID, excluded)
		}
	}
	for _, members := range byHousehold {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				merged.Forbid(members[i], members[j])
			}
		}
	}
	return merged
}

// historySet indexes prior-year pairs. History is directional: A having
// given to B last year forbids A → B again, not B → A.
type historySet map[Pair]struct{}

func newHistorySet(history []Pair) historySet {
	if len(history) == 0 {
		return nil
	}
	h := make(historySet, len(history))
	for _, p := range history {
		h[p] = struct{}{}
	}
	return h
}

func (h historySet) contains(giver, receiver ID) bool {
	if h == nil {
		return false
	}
	_, ok := h[Pair{Giver: giver, Receiver: receiver}]
	return ok
}

func validateInput(participants []Participant, extra *ConstraintSet) error {
	if len(participants) < minParticipants {
		return fmt.Errorf("%w: need at least %d participants, got %d",
			ErrInvalidInput, minParticipants, len(participants))
	}

	known := make(map[ID]struct{}, len(participants))
	for _, p := range participants {
		if p.ID == "" {
			return fmt.Errorf("%w: participant with empty id", ErrInvalidInput)
		}
		if _, dup := known[p.ID]; dup {
			return fmt.Errorf("%w: duplicate participant id %q", ErrInvalidInput, p.ID)
		}
		known[p.ID] = struct{}{}
	}

	for _, p := range participants {
		for _, excluded := range p.Excludes {
			if excluded == p.ID {
				return fmt.Errorf("%w: participant %q excludes itself", ErrInvalidInput, p.ID)
			}
			if _, ok := known[excluded]; !ok {
				return fmt.Errorf("%w: participant %q excludes unknown id %q",
					ErrInvalidInput, p.ID, excluded)
			}
		}
	}

	for _, pair := range extra.Pairs() {
		if pair.Giver == pair.Receiver {
			return fmt.Errorf("%w: self-referential constraint on %q", ErrInvalidInput, pair.Giver)
		}
		if _, ok := known[pair.Giver]; !ok {
			return fmt.Errorf("%w: constraint references unknown id %q", ErrInvalidInput, pair.Giver)
		}
		if _, ok := known[pair.Receiver]; !ok {
			return fmt.Errorf("%w: constraint references unknown id %q", ErrInvalidInput, pair.Receiver)
		}
	}
	return nil
}
