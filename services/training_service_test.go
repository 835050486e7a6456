package services

import (
	"context"
	"fmt"
	"log/slog"
	"persona-lab/ai"
	"persona-lab/dataset"
	"persona-lab/errors"
	"persona-lab/mocks"
	"persona-lab/observability"
	"persona-lab/repositories"
	"testing"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func syntheticCorpus(n int) dataset.Corpus {
	firstNames := []string{"Ada", "Alan", "Grace", "Edsger", "Barbara", "Donald", "Margaret", "Dennis"}
	places := []string{"River", "Mount", "Lake", "Bay", "Valley", "Harbour", "Island", "Forest"}
	var pos, neg []string
	for i := range n {
		pos = append(pos, fmt.Sprintf("%s Person%d", firstNames[i%len(firstNames)], i))
		neg = append(neg, fmt.Sprintf("%s Place%d", places[i%len(places)], i))
	}
	return dataset.NewCorpus(pos, neg, true)
}

func defaultOptions() TrainOptions {
	return TrainOptions{
		Params:     ai.Hyperparameters{MappingSize: 4096, BatchSize: 8, Alpha: 0.2, C: 0},
		Epochs:     30,
		TrainRatio: 0.8,
		Seed:       42,
	}
}

func newTrainingService(t *testing.T, repository repositories.IModelRepository) *TrainingService {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return NewTrainingService(log, repository, observability.NewResourceReporter(log))
}

func TestTrainingService_Train(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIModelRepository(ctrl)
	service := newTrainingService(t, repository)

	var stored repositories.ModelRecord
	repository.EXPECT().StoreModel(gomock.Any()).DoAndReturn(func(record repositories.ModelRecord) error {
		stored = record
		return nil
	}).Times(1)

	report, err := service.Train(context.Background(), "people", syntheticCorpus(40), defaultOptions())
	req.NoError(err)
	req.Equal(64, report.TrainRows)
	req.Equal(16, report.TestRows)
	req.Equal(30*8, report.Batches)
	req.Equal(stored.ID, report.ModelID)
	req.Equal("people", stored.Corpus)
	req.Equal(30, stored.Epochs)
	req.Greater(report.TrainAccuracy, 0.9)
	req.Greater(report.TestAccuracy, 0.5)
	req.Equal(report.TestAccuracy, stored.TestAccuracy)
	req.Equal(4096, stored.Model.MappingSize())
}

func TestTrainingService_Train_Deterministic(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIModelRepository(ctrl)
	service := newTrainingService(t, repository)

	var thetas [][]float64
	repository.EXPECT().StoreModel(gomock.Any()).DoAndReturn(func(record repositories.ModelRecord) error {
		thetas = append(thetas, record.Model.Theta())
		return nil
	}).Times(2)

	options := defaultOptions()
	options.Reshuffle = true
	_, err := service.Train(context.Background(), "people", syntheticCorpus(20), options)
	req.NoError(err)
	_, err = service.Train(context.Background(), "people", syntheticCorpus(20), options)
	req.NoError(err)
	req.Equal(thetas[0], thetas[1])
}

func TestTrainingService_Train_Cancelled(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIModelRepository(ctrl)
	service := newTrainingService(t, repository)
	repository.EXPECT().StoreModel(gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := service.Train(ctx, "people", syntheticCorpus(10), defaultOptions())
	req.ErrorIs(err, context.Canceled)
}

func TestTrainingService_Train_InvalidInput(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIModelRepository(ctrl)
	service := newTrainingService(t, repository)
	repository.EXPECT().StoreModel(gomock.Any()).Times(0)

	tests := []struct {
		description string
		corpus      dataset.Corpus
		modify      func(o *TrainOptions)
		target      error
	}{
		{
			"Should fail on an empty corpus",
			dataset.Corpus{},
			func(o *TrainOptions) {},
			errors.ErrEmptyDataset,
		},
		{
			"Should fail when the split leaves no training rows",
			syntheticCorpus(1),
			func(o *TrainOptions) { o.TrainRatio = 0.4 },
			errors.ErrEmptyDataset,
		},
		{
			"Should fail with zero epochs",
			syntheticCorpus(10),
			func(o *TrainOptions) { o.Epochs = 0 },
			nil,
		},
		{
			"Should fail with a ratio of one",
			syntheticCorpus(10),
			func(o *TrainOptions) { o.TrainRatio = 1 },
			nil,
		},
		{
			"Should fail with a zero batch size",
			syntheticCorpus(10),
			func(o *TrainOptions) { o.Params.BatchSize = 0 },
			nil,
		},
	}
	for _, tt := range tests {
		options := defaultOptions()
		tt.modify(&options)
		_, err := service.Train(context.Background(), "people", tt.corpus, options)
		req.Error(err, tt.description)
		if tt.target != nil {
			req.ErrorIs(err, tt.target, tt.description)
		}
	}
}

func TestTrainingService_Train_StoreFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIModelRepository(ctrl)
	service := newTrainingService(t, repository)
	repository.EXPECT().StoreModel(gomock.Any()).Return(fmt.Errorf("disk full"))

	_, err := service.Train(context.Background(), "people", syntheticCorpus(10), defaultOptions())
	req.ErrorContains(err, "disk full")
}

func TestTrainingService_Evaluate(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIModelRepository(ctrl)
	service := newTrainingService(t, repository)

	// Positive tokens weigh +1, everything else -1.
	const size = 1024
	theta := make([]float64, size)
	for i := range theta {
		theta[i] = -1
	}
	for _, idx := range ai.HashTokens("Ada Alan", size) {
		theta[idx] = 3
	}
	model, err := ai.RestoreModel(ai.Hyperparameters{MappingSize: size, BatchSize: 1, Alpha: 0.1}, theta)
	req.NoError(err)
	id := uuid.New()
	repository.EXPECT().GetModel(id).Return(repositories.ModelRecord{ID: id, Model: model}, nil)

	corpus := dataset.NewCorpus([]string{"Ada", "Alan"}, []string{"Paris", "Rome"}, true)
	accuracy, err := service.Evaluate(id, corpus)
	req.NoError(err)
	req.Equal(1.0, accuracy)

	unknown := uuid.New()
	repository.EXPECT().GetModel(unknown).Return(repositories.ModelRecord{}, errors.ErrModelNotFound)
	_, err = service.Evaluate(unknown, corpus)
	req.ErrorIs(err, errors.ErrModelNotFound)
}
