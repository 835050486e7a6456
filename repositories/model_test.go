package repositories

import (
	"log/slog"
	"persona-lab/ai"
	"persona-lab/errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newRecord(t *testing.T, at time.Time, accuracy float64) ModelRecord {
	t.Helper()
	m, err := ai.NewModel(ai.Hyperparameters{MappingSize: 16, BatchSize: 4, Alpha: 0.2})
	require.NoError(t, err)
	return ModelRecord{
		ID:            uuid.New(),
		CreatedAt:     at,
		Corpus:        "people",
		Epochs:        100,
		TrainAccuracy: accuracy + 0.05,
		TestAccuracy:  accuracy,
		Model:         m,
	}
}

func Test_Store_And_Get_Model(t *testing.T) {
	req := require.New(t)
	repository := NewModelRepository(openTestDB(t), slog.Default())
	record := newRecord(t, time.Now().UTC(), 0.81)

	req.NoError(repository.StoreModel(record))
	fetched, err := repository.GetModel(record.ID)
	req.NoError(err)
	req.Equal(record.ID, fetched.ID)
	req.True(record.CreatedAt.Equal(fetched.CreatedAt))
	req.Equal(record.Corpus, fetched.Corpus)
	req.Equal(record.Epochs, fetched.Epochs)
	req.Equal(record.TrainAccuracy, fetched.TrainAccuracy)
	req.Equal(record.TestAccuracy, fetched.TestAccuracy)
	req.Equal(record.Model.Hyperparameters(), fetched.Model.Hyperparameters())
	req.Equal(record.Model.Theta(), fetched.Model.Theta())
}

func Test_Get_Unknown_Model(t *testing.T) {
	req := require.New(t)
	repository := NewModelRepository(openTestDB(t), slog.Default())
	_, err := repository.GetModel(uuid.New())
	req.ErrorIs(err, errors.ErrModelNotFound)
}

func Test_Latest_Model(t *testing.T) {
	req := require.New(t)
	repository := NewModelRepository(openTestDB(t), slog.Default())

	_, err := repository.LatestModel()
	req.ErrorIs(err, errors.ErrModelNotFound)

	at := time.Now().UTC()
	newest := newRecord(t, at.Add(2*time.Minute), 0.9)
	records := []ModelRecord{
		newRecord(t, at, 0.7),
		newest,
		newRecord(t, at.Add(1*time.Minute), 0.8),
	}
	for _, record := range records {
		req.NoError(repository.StoreModel(record))
	}

	latest, err := repository.LatestModel()
	req.NoError(err)
	req.Equal(newest.ID, latest.ID)
}

func Test_List_Models_Oldest_First(t *testing.T) {
	req := require.New(t)
	repository := NewModelRepository(openTestDB(t), slog.Default())
	at := time.Now().UTC()
	first := newRecord(t, at, 0.7)
	second := newRecord(t, at.Add(time.Second), 0.8)
	req.NoError(repository.StoreModel(second))
	req.NoError(repository.StoreModel(first))

	records, err := repository.ListModels()
	req.NoError(err)
	req.Len(records, 2)
	req.Equal(first.ID, records[0].ID)
	req.Equal(second.ID, records[1].ID)
}
