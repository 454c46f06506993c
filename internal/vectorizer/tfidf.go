package vectorizer

import (
	"errors"
	"math"
	"regexp"
	"sort"
)

// DefaultMaxFeatures caps the vocabulary at the most frequent terms.
const DefaultMaxFeatures = 1000

// Words of two or more characters, matching the usual TF-IDF token pattern.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Vectorizer converts text into fixed-length TF-IDF vectors over unigrams and
// bigrams. It does not lower-case input; callers must pass pre-lowered text so
// that fitting and transforming agree on case.
//
// Fitting is deterministic: the vocabulary is the top MaxFeatures terms by
// document frequency, with ties and index assignment resolved by lexicographic
// order.
type Vectorizer struct {
	MaxFeatures int            `json:"max_features"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
}

// New returns an unfitted vectorizer. maxFeatures <= 0 selects the default.
func New(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// tokenize splits text into unigram and bigram terms.
func tokenize(text string) []string {
	words := tokenPattern.FindAllString(text, -1)
	terms := make([]string, 0, 2*len(words))
	for i, w := range words {
		terms = append(terms, w)
		if i+1 < len(words) {
			terms = append(terms, w+" "+words[i+1])
		}
	}
	return terms
}

// Fit builds the vocabulary and IDF weights from the training documents.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.New("cannot fit vectorizer on empty corpus")
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range tokenize(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return errors.New("no tokens found in corpus")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	// Highest document frequency first, alphabetical among ties, so that the
	// vocabulary cut is reproducible run to run.
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return nil
}

// Dimension is the fitted feature vector length.
func (v *Vectorizer) Dimension() int {
	return len(v.IDF)
}

// Transform encodes one document as an L2-normalised TF-IDF vector. Text made
// entirely of out-of-vocabulary terms yields the zero vector; that is a valid
// encoding, not an error.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, v.Dimension())

	counts := make(map[int]int)
	for _, term := range tokenize(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return vec
	}

	var norm float64
	for idx, count := range counts {
		vec[idx] = float64(count) * v.IDF[idx]
		norm += vec[idx] * vec[idx]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for idx := range counts {
			vec[idx] /= norm
		}
	}
	return vec
}
