package bot

import "math/rand"

// FallbackResponses are returned when no intent can be trusted for a query.
var FallbackResponses = []string{
	"I'm not sure about that. Please visit https://dkut.ac.ke",
	"Could you rephrase your question?",
	"I'm still learning about that topic.",
	"Please contact admissions@dkut.ac.ke for more information.",
}

// Sampler supplies the randomness for response selection. Tests substitute a
// fixed-sequence implementation to make selection deterministic.
type Sampler interface {
	Intn(n int) int
}

// globalSampler draws from math/rand's locked global source, so a shared
// selector is safe under concurrent requests.
type globalSampler struct{}

func (globalSampler) Intn(n int) int { return rand.Intn(n) }

// Selector picks responses uniformly at random. Selection is memoryless:
// repeated identical queries may produce different responses.
type Selector struct {
	sampler Sampler
}

// NewSelector builds a selector; a nil sampler selects production randomness.
func NewSelector(sampler Sampler) *Selector {
	if sampler == nil {
		sampler = globalSampler{}
	}
	return &Selector{sampler: sampler}
}

// Pick chooses one of the given responses.
func (s *Selector) Pick(responses []string) string {
	return responses[s.sampler.Intn(len(responses))]
}

// Fallback chooses one of the generic fallback messages.
func (s *Selector) Fallback() string {
	return s.Pick(FallbackResponses)
}
