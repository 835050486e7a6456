package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"persona-lab/ai"
	"persona-lab/dataset"
	"persona-lab/errors"
	"persona-lab/observability"
	"persona-lab/repositories"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type ITrainingService interface {
	Train(ctx context.Context, corpusName string, corpus dataset.Corpus, options TrainOptions) (TrainingReport, error)
	Evaluate(id uuid.UUID, corpus dataset.Corpus) (float64, error)
}

type TrainOptions struct {
	Params     ai.Hyperparameters
	Epochs     int     `validate:"gt=0"`
	TrainRatio float64 `validate:"gt=0,lt=1"`
	Seed       uint64
	// Reshuffle draws a new row order for the training split before every epoch
	// after the first, varying batch composition.
	Reshuffle bool
}

type TrainingReport struct {
	ModelID       uuid.UUID
	TrainRows     int
	TestRows      int
	Nnz           int
	Epochs        int
	Batches       int
	TrainAccuracy float64
	TestAccuracy  float64
	Duration      time.Duration
}

type TrainingService struct {
	log        *slog.Logger
	repository repositories.IModelRepository
	resources  *observability.ResourceReporter
	now        func() time.Time
}

func NewTrainingService(
	log *slog.Logger,
	repository repositories.IModelRepository,
	resources *observability.ResourceReporter,
) *TrainingService {
	return &TrainingService{
		log:        log,
		repository: repository,
		resources:  resources,
		now:        time.Now,
	}
}

// Train fits a fresh model on corpus and stores it.
// The context is only consulted between epochs: a single epoch always runs to
// completion, and a cancelled run stores nothing.
func (s *TrainingService) Train(
	ctx context.Context,
	corpusName string,
	corpus dataset.Corpus,
	options TrainOptions,
) (TrainingReport, error) {
	if err := validate.Struct(options); err != nil {
		return TrainingReport{}, fmt.Errorf("invalid training options: %w", err)
	}
	if corpus.Len() == 0 {
		return TrainingReport{}, fmt.Errorf("%w: corpus %q has no rows", errors.ErrEmptyDataset, corpusName)
	}
	start := s.now()

	// 1. Rebuild the design matrix for the requested mapping size
	if err := corpus.Hash(options.Params.MappingSize); err != nil {
		return TrainingReport{}, fmt.Errorf("hashing failed: %w", err)
	}
	s.resources.Report("hash", "rows", corpus.Len(), "nnz", corpus.Features.Nnz())

	// 2. Shuffle once, then split
	rng := rand.New(rand.NewPCG(options.Seed, options.Seed^0x9e3779b97f4a7c15))
	corpus.Shuffle(rng)
	train, test, err := corpus.Split(options.TrainRatio)
	if err != nil {
		return TrainingReport{}, err
	}
	if train.Len() == 0 {
		return TrainingReport{}, fmt.Errorf("%w: ratio %v leaves no training rows", errors.ErrEmptyDataset, options.TrainRatio)
	}

	// 3. One Fit per epoch on the same model
	model, err := ai.NewModel(options.Params)
	if err != nil {
		return TrainingReport{}, err
	}
	batches := 0
	for epoch := range options.Epochs {
		if err := ctx.Err(); err != nil {
			s.log.Warn("Training interrupted", "corpus", corpusName, "epoch", epoch)
			return TrainingReport{}, fmt.Errorf("training interrupted at epoch %d: %w", epoch, err)
		}
		if options.Reshuffle && epoch > 0 {
			train.Shuffle(rng)
		}
		n, err := model.Fit(train.Features, train.Labels)
		if err != nil {
			return TrainingReport{}, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		batches += n
		s.log.Debug("Epoch done", "epoch", epoch+1, "batches", n)
	}
	if batches == 0 {
		s.log.Warn("No full batch in training split, model left untrained",
			"train_rows", train.Len(), "batch_size", options.Params.BatchSize)
	}

	// 4. Evaluate on both splits
	trainAccuracy, err := model.Score(train.Features, train.Labels)
	if err != nil {
		return TrainingReport{}, fmt.Errorf("scoring training split: %w", err)
	}
	testAccuracy, err := model.Score(test.Features, test.Labels)
	if err != nil {
		return TrainingReport{}, fmt.Errorf("scoring test split: %w", err)
	}
	s.resources.Report("train", "batches", batches)

	// 5. Persist
	record := repositories.ModelRecord{
		ID:            uuid.New(),
		CreatedAt:     s.now().UTC(),
		Corpus:        corpusName,
		Epochs:        options.Epochs,
		TrainAccuracy: trainAccuracy,
		TestAccuracy:  testAccuracy,
		Model:         model,
	}
	if err := s.repository.StoreModel(record); err != nil {
		return TrainingReport{}, fmt.Errorf("failed to store model: %w", err)
	}

	report := TrainingReport{
		ModelID:       record.ID,
		TrainRows:     train.Len(),
		TestRows:      test.Len(),
		Nnz:           corpus.Features.Nnz(),
		Epochs:        options.Epochs,
		Batches:       batches,
		TrainAccuracy: trainAccuracy,
		TestAccuracy:  testAccuracy,
		Duration:      s.now().Sub(start),
	}
	s.log.Info("Model trained",
		"id", report.ModelID,
		"corpus", corpusName,
		"train_rows", report.TrainRows,
		"test_rows", report.TestRows,
		"train_accuracy", report.TrainAccuracy,
		"test_accuracy", report.TestAccuracy,
		"duration", report.Duration,
	)
	return report, nil
}

// Evaluate scores a stored model against corpus, hashed with the model's own mapping size.
func (s *TrainingService) Evaluate(id uuid.UUID, corpus dataset.Corpus) (float64, error) {
	record, err := s.repository.GetModel(id)
	if err != nil {
		return 0, err
	}
	if err := corpus.Hash(record.Model.MappingSize()); err != nil {
		return 0, err
	}
	accuracy, err := record.Model.Score(corpus.Features, corpus.Labels)
	if err != nil {
		return 0, err
	}
	s.log.Info("Model evaluated", "id", id, "rows", corpus.Len(), "accuracy", accuracy)
	return accuracy, nil
}
