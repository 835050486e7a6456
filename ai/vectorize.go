package ai

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/samber/lo"
	"github.com/spaolacci/murmur3"
)

// tokenPattern matches word-like runs: letters with their combining marks,
// digits, and straight or typographic apostrophes.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}'’]+`)

// FeatureVector is the sorted, duplicate-free set of active indices of a
// binary feature vector.
type FeatureVector []int

// Vectorizer provides methods to transform text into numerical features.
type Vectorizer struct {
	size int
}

// NewVectorizer initializes a vectorizer with a fixed feature space size.
// The size must match the mapping size of the model the features are fed to.
func NewVectorizer(size int) (*Vectorizer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mapping size must be positive, got %d", size)
	}
	return &Vectorizer{size: size}, nil
}

func (v *Vectorizer) Size() int {
	return v.size
}

// Features transforms a raw string into its hashed index set.
func (v *Vectorizer) Features(text string) FeatureVector {
	return HashTokens(text, v.size)
}

// Tokenize splits text into word-like tokens. Case is kept: names are
// case-informative.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// HashTokens maps every token of text into [0, mappingSize) using the "Hashing Trick".
// The signed 32-bit MurmurHash3 value is reduced with a non-negative modulo, so two
// tokens hashing to the same index produce a single active feature.
// mappingSize must be positive.
func HashTokens(text string, mappingSize int) FeatureVector {
	indices := lo.Map(Tokenize(text), func(token string, _ int) int {
		return hashIndex(token, mappingSize)
	})
	indices = lo.Uniq(indices)
	slices.Sort(indices)
	return indices
}

func hashIndex(token string, mappingSize int) int {
	h := int64(int32(murmur3.Sum32([]byte(token))))
	idx := h % int64(mappingSize)
	if idx < 0 {
		idx += int64(mappingSize)
	}
	return int(idx)
}
