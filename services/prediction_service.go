package services

import (
	"log/slog"
	"persona-lab/ai"
	"persona-lab/repositories"

	"github.com/google/uuid"
)

type IPredictionService interface {
	Predict(text string) (Prediction, error)
}

type Prediction struct {
	Text        string
	Features    ai.FeatureVector
	Probability float64
	Label       int
}

type PredictionService struct {
	log     *slog.Logger
	modelID uuid.UUID
	model   *ai.Model
}

func NewPredictionService(log *slog.Logger, record repositories.ModelRecord) *PredictionService {
	return &PredictionService{log: log, modelID: record.ID, model: record.Model}
}

// LoadPredictionService serves the model stored under id, or the most recent one when id is nil.
func LoadPredictionService(log *slog.Logger, repository repositories.IModelRepository, id uuid.UUID) (*PredictionService, error) {
	var record repositories.ModelRecord
	var err error
	if id == uuid.Nil {
		record, err = repository.LatestModel()
	} else {
		record, err = repository.GetModel(id)
	}
	if err != nil {
		return nil, err
	}
	log.Info("Model loaded", "id", record.ID, "mapping_size", record.Model.MappingSize(), "test_accuracy", record.TestAccuracy)
	return NewPredictionService(log, record), nil
}

func (s *PredictionService) ModelID() uuid.UUID {
	return s.modelID
}

// Predict hashes text into the model's feature space and labels it.
func (s *PredictionService) Predict(text string) (Prediction, error) {
	features := ai.HashTokens(text, s.model.MappingSize())
	p, err := s.model.Probability(features)
	if err != nil {
		return Prediction{}, err
	}
	label := ai.Decide(p)
	s.log.Debug("Prediction", "text", text, "features", len(features), "probability", p, "label", label)
	return Prediction{Text: text, Features: features, Probability: p, Label: label}, nil
}
