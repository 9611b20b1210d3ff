package services

import (
	"fmt"
	"math/rand"
	"sync"

	"santas-draw/errors"
)

// Invite code vocabulary: adjective-noun-number reads better on a shared
// link than a UUID and is easy to relay over the phone.
var (
	inviteAdjectives = []string{
		"jolly", "merry", "festive", "bright", "shiny", "sparkly",
		"cheerful", "happy", "cozy", "magical", "snowy", "frosty",
		"gleaming", "twinkling", "radiant", "dazzling", "glowing", "beaming",
	}

	inviteNouns = []string{
		"reindeer", "snowman", "gift", "star", "bell", "tree",
		"santa", "elf", "candy", "sleigh", "angel", "wreath",
		"snowflake", "gingerbread", "stocking", "ornament", "mistletoe", "carol",
	}
)

const inviteCodeMaxRetries = 5

// InviteCodeGenerator produces unique, memorable invite codes of the form
// adjective-noun-number (e.g. jolly-reindeer-742). The random source is
// injected so tests are deterministic. A single generator is shared by all
// HTTP handlers and rand.Rand is not goroutine-safe, so draws from the
// source are serialized by a mutex.
type InviteCodeGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewInviteCodeGenerator(rng *rand.Rand) *InviteCodeGenerator {
	return &InviteCodeGenerator{rng: rng}
}

// Generate returns a code not currently taken according to the provided
// lookup, retrying on collision a bounded number of times.
func (g *InviteCodeGenerator) Generate(taken func(code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < inviteCodeMaxRetries; attempt++ {
		g.mu.Lock()
		adjective := inviteAdjectives[g.rng.Intn(len(inviteAdjectives))]
		noun := inviteNouns[g.rng.Intn(len(inviteNouns))]
		number := 100 + g.rng.Intn(900)
		g.mu.Unlock()

		code := fmt.Sprintf("%s-%s-%d", adjective, noun, number)

		exists, err := taken(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.ErrInviteCodeExhausted
}
