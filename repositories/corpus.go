//go:generate go run go.uber.org/mock/mockgen -source=corpus.go -destination=../mocks/mock_corpus_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"persona-lab/dataset"
	"persona-lab/errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/encoding/protowire"
)

type ICorpusRepository interface {
	StoreCorpus(name string, corpus dataset.Corpus) error
	GetCorpus(name string) (dataset.Corpus, error)
}

// CorpusRepository persists labeled subjects. Feature matrices are never
// stored: they are rebuilt from the subjects for whatever mapping size the
// caller trains with.
type CorpusRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewCorpusRepository(db *badger.DB, log *slog.Logger) CorpusRepository {
	return CorpusRepository{db: db, log: log}
}

// StoreCorpus replaces any corpus stored under name. Rows are keyed
// "corpus:{name}:{row_padded}" so a prefix scan restores them in order.
func (r CorpusRepository) StoreCorpus(name string, corpus dataset.Corpus) error {
	if err := validateCorpusName(name); err != nil {
		return err
	}
	if corpus.Len() != len(corpus.Labels) {
		return fmt.Errorf("%w: %d subjects, %d labels",
			errors.ErrDimensionMismatch, corpus.Len(), len(corpus.Labels))
	}
	if err := r.db.DropPrefix(corpusPrefix(name)); err != nil {
		return fmt.Errorf("failed to drop previous corpus %q: %w", name, err)
	}

	wb := r.db.NewWriteBatch()
	defer wb.Cancel()
	for i, subject := range corpus.Subjects {
		key := fmt.Sprintf("corpus:%s:%012d", name, i)
		if err := wb.Set([]byte(key), encodeRow(subject, corpus.Labels[i])); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return err
	}
	r.log.Info("Corpus stored", "name", name, "rows", corpus.Len(), "positives", corpus.Positives())
	return nil
}

// GetCorpus restores the rows of a stored corpus in their original order.
func (r CorpusRepository) GetCorpus(name string) (dataset.Corpus, error) {
	if err := validateCorpusName(name); err != nil {
		return dataset.Corpus{}, err
	}
	var subjects []string
	var labels []int
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchSize = 1000
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := corpusPrefix(name)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				subject, label, err := decodeRow(v)
				if err != nil {
					return err
				}
				subjects = append(subjects, subject)
				labels = append(labels, label)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dataset.Corpus{}, err
	}
	if len(subjects) == 0 {
		return dataset.Corpus{}, fmt.Errorf("%w: corpus %q", errors.ErrInputNotFound, name)
	}
	return dataset.FromRows(subjects, labels)
}

// Names end at the first ':' of a key, so they cannot contain one.
func validateCorpusName(name string) error {
	if name == "" || strings.Contains(name, ":") {
		return fmt.Errorf("invalid corpus name %q", name)
	}
	return nil
}

func corpusPrefix(name string) []byte {
	return []byte("corpus:" + name + ":")
}

const (
	rowSubject protowire.Number = 1
	rowLabel   protowire.Number = 2
)

func encodeRow(subject string, label int) []byte {
	var b []byte
	b = protowire.AppendTag(b, rowSubject, protowire.BytesType)
	b = protowire.AppendString(b, subject)
	b = protowire.AppendTag(b, rowLabel, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(label))
	return b
}

func decodeRow(b []byte) (string, int, error) {
	var subject string
	var label int
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == rowSubject && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(v)
			subject = s
			return n, nil
		case num == rowLabel && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(v)
			label = int(x)
			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, v), nil
		}
	})
	return subject, label, err
}
