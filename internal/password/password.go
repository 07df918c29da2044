// Package password generates one-time passwords of the form word + 4 digits + "!".
//
// The passwords are meant to be changed at first sign-in. The space is the
// word bank size times 9000, which is fine for that and nothing else.
package password

import (
	"math/rand/v2"
	"strconv"
)

const (
	minNumber = 1000
	maxNumber = 9999
	suffix    = "!"
)

// words keeps the roster tool's historical bank as-is: "sun" is three letters
// and "gold" appears twice, which slightly biases the draw toward it.
var words = []string{
	"ball", "bear", "bike", "bird", "book", "cake", "call", "card", "care", "cats",
	"cook", "cool", "desk", "door", "draw", "duck", "farm", "fish", "flag", "flow",
	"food", "game", "gift", "girl", "gold", "good", "hand", "help", "hero", "home",
	"hope", "jump", "kind", "king", "kite", "lamp", "leaf", "life", "lion", "love",
	"moon", "nice", "note", "park", "play", "rain", "read", "rock", "room", "rose",
	"safe", "sand", "seed", "ship", "sing", "snow", "soil", "song", "star", "stay",
	"sun", "swim", "tall", "team", "time", "tree", "true", "walk", "wave", "wind",
	"wish", "wood", "work", "year", "zero", "zoom", "blue", "pink", "gold", "mint",
}

// Words returns a copy of the word bank.
func Words() []string {
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource draws from src instead of the runtime's shared source.
func WithSource(src rand.Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.rnd = rand.New(src)
		}
	}
}

// Generator produces passwords. The zero value is not usable; call New.
// A Generator built WithSource is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a generator backed by math/rand/v2's shared source unless an
// option says otherwise.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) intN(n int) int {
	if g.rnd != nil {
		return g.rnd.IntN(n)
	}
	return rand.IntN(n)
}

// Generate returns a fresh password. Calls are independent of each other.
func (g *Generator) Generate() string {
	word := words[g.intN(len(words))]
	num := minNumber + g.intN(maxNumber-minNumber+1)
	return word + strconv.Itoa(num) + suffix
}
