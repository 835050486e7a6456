package dataset

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"persona-lab/ai"
	"persona-lab/errors"

	"github.com/samber/lo"
)

// Mapping links a mapped subject (e.g. a name literal) to the subject it originates from.
type Mapping struct {
	Mapped string
	Origin string
}

// Label splits mapped subjects into positives, whose origin belongs to nameSet,
// and negatives. Input order is kept in both lists.
func Label(nameSet map[string]struct{}, mappings []Mapping) (pos, neg []string) {
	for _, m := range mappings {
		if _, ok := nameSet[m.Origin]; ok {
			pos = append(pos, m.Mapped)
		} else {
			neg = append(neg, m.Mapped)
		}
	}
	return pos, neg
}

// Partition splits a stream of (subject, is_member) pairs the same way Label does.
func Partition(seq iter.Seq2[string, bool]) (pos, neg []string) {
	for subject, member := range seq {
		if member {
			pos = append(pos, subject)
		} else {
			neg = append(neg, subject)
		}
	}
	return pos, neg
}

// Balance truncates the longer list to the length of the shorter one.
// It keeps a prefix rather than sampling, which keeps runs reproducible but
// biases the kept subset towards whatever the label source emits first.
func Balance(pos, neg []string) ([]string, []string) {
	n := min(len(pos), len(neg))
	return pos[:n], neg[:n]
}

// Corpus holds three row-aligned collections: subjects, labels and, once
// hashed, the design matrix.
type Corpus struct {
	Subjects []string
	Labels   []int
	Features *ai.Matrix
}

// NewCorpus lays out positives first, then negatives.
func NewCorpus(pos, neg []string, balance bool) Corpus {
	if balance {
		pos, neg = Balance(pos, neg)
	}
	subjects := make([]string, 0, len(pos)+len(neg))
	subjects = append(subjects, pos...)
	subjects = append(subjects, neg...)
	labels := append(
		lo.Times(len(pos), func(int) int { return 1 }),
		lo.Times(len(neg), func(int) int { return 0 })...,
	)
	return Corpus{Subjects: subjects, Labels: labels}
}

// FromRows rebuilds a corpus from stored subjects and labels.
func FromRows(subjects []string, labels []int) (Corpus, error) {
	if len(subjects) != len(labels) {
		return Corpus{}, fmt.Errorf("%w: %d subjects, %d labels",
			errors.ErrDimensionMismatch, len(subjects), len(labels))
	}
	return Corpus{Subjects: subjects, Labels: labels}, nil
}

func (c Corpus) Len() int {
	return len(c.Subjects)
}

// Positives counts rows labeled 1.
func (c Corpus) Positives() int {
	return lo.Count(c.Labels, 1)
}

// BuildMatrix hashes every subject into one row of a fresh design matrix.
func BuildMatrix(subjects []string, mappingSize int) (*ai.Matrix, error) {
	v, err := ai.NewVectorizer(mappingSize)
	if err != nil {
		return nil, err
	}
	m := ai.NewMatrix(mappingSize)
	for _, subject := range subjects {
		if err := m.AppendRow(v.Features(subject)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hash rebuilds the design matrix from scratch for the given mapping size.
func (c *Corpus) Hash(mappingSize int) error {
	m, err := BuildMatrix(c.Subjects, mappingSize)
	if err != nil {
		return err
	}
	c.Features = m
	return nil
}

// Shuffle applies one uniformly random permutation to subjects, labels and
// matrix rows alike.
func (c *Corpus) Shuffle(rng *rand.Rand) {
	perm := rng.Perm(c.Len())
	c.Permute(perm)
}

// Permute reorders every collection so that row i becomes former row perm[i].
func (c *Corpus) Permute(perm []int) {
	subjects := make([]string, len(perm))
	labels := make([]int, len(perm))
	for i, src := range perm {
		subjects[i] = c.Subjects[src]
		labels[i] = c.Labels[src]
	}
	c.Subjects = subjects
	c.Labels = labels
	if c.Features != nil {
		c.Features = c.Features.Permute(perm)
	}
}

// Split keeps the leading floor(n*ratio) rows for training and the rest for testing.
func (c Corpus) Split(ratio float64) (train, test Corpus, err error) {
	if !(ratio >= 0 && ratio <= 1) {
		return Corpus{}, Corpus{}, fmt.Errorf("split ratio must be within [0, 1], got %v", ratio)
	}
	n := int(float64(c.Len()) * ratio)
	train = Corpus{Subjects: c.Subjects[:n], Labels: c.Labels[:n]}
	test = Corpus{Subjects: c.Subjects[n:], Labels: c.Labels[n:]}
	if c.Features != nil {
		train.Features = c.Features.Slice(0, n)
		test.Features = c.Features.Slice(n, c.Len())
	}
	return train, test, nil
}
