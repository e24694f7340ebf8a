// Package reply generates the victim persona's side of the
// conversation. The strategist is an ordered decision table, first
// match wins; it keeps no memory of which branch fired before, so
// repeated content is possible and accepted.
package reply

import (
	"math/rand"
	"strings"
	"sync"
)

// Greeting is returned for messages that carry no scam signal.
const Greeting = "Hello, how can I help you?"

// stallPool keeps the conversation alive when no keyword branch fires.
var stallPool = []string{
	"I am confused.",
	"Please tell me what to do.",
	"Is this official?",
	"I am getting scared.",
}

type rule struct {
	match   func(text string, messagesSoFar int) bool
	respond func(rng *rand.Rand) string
}

// Strategist picks the next outbound reply for an engaged session.
// The randomness source is injected so tests can seed it.
type Strategist struct {
	mu    sync.Mutex
	rng   *rand.Rand
	rules []rule
}

// NewStrategist builds the decision table around the given source.
func NewStrategist(rng *rand.Rand) *Strategist {
	contains := func(substr string) func(string, int) bool {
		return func(text string, _ int) bool {
			return strings.Contains(strings.ToLower(text), substr)
		}
	}
	static := func(text string) func(*rand.Rand) string {
		return func(*rand.Rand) string { return text }
	}

	return &Strategist{
		rng: rng,
		rules: []rule{
			// Establish the confused-victim persona before engaging
			// on specifics.
			{
				match:   func(_ string, messagesSoFar int) bool { return messagesSoFar < 2 },
				respond: static("Who is this? Why are you messaging me?"),
			},
			// Signal compliance without handing over real data.
			{
				match:   contains("verify"),
				respond: static("I don't know how to verify. Can you help me?"),
			},
			{
				match:   contains("bank"),
				respond: static("Oh no! My bank account? What happened?"),
			},
			// Baits the scammer into explaining, and revealing, their
			// payment rails.
			{
				match:   contains("upi"),
				respond: static("I send money using GPay normally. Is that UPI?"),
			},
			{
				match: func(string, int) bool { return true },
				respond: func(rng *rand.Rand) string {
					return stallPool[rng.Intn(len(stallPool))]
				},
			},
		},
	}
}

// NextReply returns the persona's next message given the adversary's
// latest text and the number of messages already in the session
// (inbound message included). Total function, never fails.
func (s *Strategist) NextReply(latestAdversaryText string, messagesSoFar int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rules {
		if r.match(latestAdversaryText, messagesSoFar) {
			return r.respond(s.rng)
		}
	}
	// The last rule always matches; unreachable.
	return Greeting
}

// StallPool returns a copy of the fallback reply pool.
func StallPool() []string {
	out := make([]string, len(stallPool))
	copy(out, stallPool)
	return out
}
