//go:generate go run go.uber.org/mock/mockgen -source=model.go -destination=../mocks/mock_model_repository.go -package=mocks
package repositories

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"math"
	"persona-lab/ai"
	"persona-lab/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

const modelPrefix = "model:"

type IModelRepository interface {
	StoreModel(record ModelRecord) error
	GetModel(id uuid.UUID) (ModelRecord, error)
	LatestModel() (ModelRecord, error)
	ListModels() ([]ModelRecord, error)
}

// ModelRecord is a trained model together with how it was obtained.
type ModelRecord struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	Corpus        string
	Epochs        int
	TrainAccuracy float64
	TestAccuracy  float64
	Model         *ai.Model
}

type ModelRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewModelRepository(db *badger.DB, log *slog.Logger) ModelRepository {
	return ModelRepository{db: db, log: log}
}

// StoreModel persists a record under "model:{created_padded}:{uuid}" so that
// a forward prefix scan yields models from oldest to newest. A secondary
// "idx:model:{uuid}" key points at the primary key for lookups by ID.
func (r ModelRepository) StoreModel(record ModelRecord) error {
	key := modelKey(record)
	value := encodeRecord(record)
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), value); err != nil {
			return err
		}
		return txn.Set(indexKey(record.ID), []byte(key))
	})
}

func (r ModelRepository) GetModel(id uuid.UUID) (ModelRecord, error) {
	var record ModelRecord
	err := r.db.View(func(txn *badger.Txn) error {
		idx, err := txn.Get(indexKey(id))
		if err != nil {
			return err
		}
		primary, err := idx.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(primary)
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			record, err = decodeRecord(v)
			return err
		})
	})
	if stdErrors.Is(err, badger.ErrKeyNotFound) {
		return ModelRecord{}, fmt.Errorf("%w: %s", errors.ErrModelNotFound, id)
	}
	return record, err
}

// LatestModel returns the most recently created model.
func (r ModelRepository) LatestModel() (ModelRecord, error) {
	var record ModelRecord
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(modelPrefix)
		// Every key sorts before "model:" followed by 0xFF.
		it.Seek(append([]byte(modelPrefix), 0xFF))
		if !it.ValidForPrefix(prefix) {
			return nil
		}
		found = true
		return it.Item().Value(func(v []byte) error {
			var err error
			record, err = decodeRecord(v)
			return err
		})
	})
	if err != nil {
		return ModelRecord{}, err
	}
	if !found {
		return ModelRecord{}, fmt.Errorf("%w: repository is empty", errors.ErrModelNotFound)
	}
	return record, nil
}

// ListModels returns every stored model, oldest first.
func (r ModelRepository) ListModels() ([]ModelRecord, error) {
	var records []ModelRecord
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(modelPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				record, err := decodeRecord(v)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Debug("Models listed", "count", len(records))
	return records, nil
}

func modelKey(record ModelRecord) string {
	return fmt.Sprintf("%s%019d:%s", modelPrefix, record.CreatedAt.UnixNano(), record.ID)
}

func indexKey(id uuid.UUID) []byte {
	return []byte("idx:model:" + id.String())
}

const (
	recordID            protowire.Number = 1
	recordCreatedAt     protowire.Number = 2
	recordCorpus        protowire.Number = 3
	recordEpochs        protowire.Number = 4
	recordTrainAccuracy protowire.Number = 5
	recordTestAccuracy  protowire.Number = 6
	recordModel         protowire.Number = 7
)

func encodeRecord(record ModelRecord) []byte {
	var b []byte
	b = protowire.AppendTag(b, recordID, protowire.BytesType)
	b = protowire.AppendString(b, record.ID.String())
	b = protowire.AppendTag(b, recordCreatedAt, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(record.CreatedAt.UnixNano()))
	b = protowire.AppendTag(b, recordCorpus, protowire.BytesType)
	b = protowire.AppendString(b, record.Corpus)
	b = protowire.AppendTag(b, recordEpochs, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(record.Epochs))
	b = protowire.AppendTag(b, recordTrainAccuracy, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(record.TrainAccuracy))
	b = protowire.AppendTag(b, recordTestAccuracy, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(record.TestAccuracy))
	b = protowire.AppendTag(b, recordModel, protowire.BytesType)
	b = protowire.AppendBytes(b, EncodeModel(record.Model))
	return b
}

func decodeRecord(b []byte) (ModelRecord, error) {
	var record ModelRecord
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == recordID && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(v)
			if n < 0 {
				return n, nil
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return 0, fmt.Errorf("%w: %w", errors.ErrCorruptRecord, err)
			}
			record.ID = id
			return n, nil
		case num == recordCreatedAt && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(v)
			record.CreatedAt = time.Unix(0, protowire.DecodeZigZag(x)).UTC()
			return n, nil
		case num == recordCorpus && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(v)
			record.Corpus = s
			return n, nil
		case num == recordEpochs && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(v)
			record.Epochs = int(x)
			return n, nil
		case num == recordTrainAccuracy && typ == protowire.Fixed64Type:
			x, n := protowire.ConsumeFixed64(v)
			record.TrainAccuracy = math.Float64frombits(x)
			return n, nil
		case num == recordTestAccuracy && typ == protowire.Fixed64Type:
			x, n := protowire.ConsumeFixed64(v)
			record.TestAccuracy = math.Float64frombits(x)
			return n, nil
		case num == recordModel && typ == protowire.BytesType:
			payload, n := protowire.ConsumeBytes(v)
			if n < 0 {
				return n, nil
			}
			model, err := DecodeModel(payload)
			if err != nil {
				return 0, err
			}
			record.Model = model
			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, v), nil
		}
	})
	if err != nil {
		return ModelRecord{}, err
	}
	if record.Model == nil {
		return ModelRecord{}, fmt.Errorf("%w: record %s has no model", errors.ErrCorruptRecord, record.ID)
	}
	return record, nil
}
