package services

import (
	"fmt"
	"log/slog"
	"persona-lab/dataset"
	"persona-lab/errors"
	"persona-lab/repositories"
	"persona-lab/source"
)

type IDatasetService interface {
	Build(request BuildRequest) (dataset.Corpus, error)
}

// BuildRequest names the graph files a corpus is derived from.
type BuildRequest struct {
	Name         string `validate:"required,excludes=:"`
	IdentityPath string `validate:"required"`
	MapPath      string `validate:"required"`
	TypeIRI      string `validate:"required"`
	Predicate    string `validate:"required"`
	Balance      bool
}

type DatasetService struct {
	log        *slog.Logger
	repository repositories.ICorpusRepository
}

func NewDatasetService(log *slog.Logger, repository repositories.ICorpusRepository) *DatasetService {
	return &DatasetService{log: log, repository: repository}
}

// Build labels every mapped subject of MapPath against the identities of
// IdentityPath, then stores the resulting corpus under Name.
func (s *DatasetService) Build(request BuildRequest) (dataset.Corpus, error) {
	if err := validate.Struct(request); err != nil {
		return dataset.Corpus{}, fmt.Errorf("invalid build request: %w", err)
	}

	// 1. Identities meeting the membership criterion
	nameSet, err := source.LoadIdentifiers(request.IdentityPath, request.TypeIRI)
	if err != nil {
		return dataset.Corpus{}, fmt.Errorf("identities: %w", err)
	}

	// 2. Mapped subjects with their origin
	mappings, err := source.LoadMappings(request.MapPath, request.Predicate)
	if err != nil {
		return dataset.Corpus{}, fmt.Errorf("mappings: %w", err)
	}

	// 3. Label and balance
	pos, neg := dataset.Label(nameSet, mappings)
	corpus := dataset.NewCorpus(pos, neg, request.Balance)
	s.log.Info("Corpus built",
		"name", request.Name,
		"identities", len(nameSet),
		"mappings", len(mappings),
		"positives", len(pos),
		"negatives", len(neg),
		"rows", corpus.Len(),
	)
	if request.Balance && len(pos) != len(neg) {
		s.log.Warn("Balancing kept a prefix of the larger class", "dropped", abs(len(pos)-len(neg)))
	}
	if corpus.Len() == 0 {
		return dataset.Corpus{}, fmt.Errorf("%w: no labeled subject in %s", errors.ErrEmptyDataset, request.MapPath)
	}

	// 4. Persist
	if err := s.repository.StoreCorpus(request.Name, corpus); err != nil {
		return dataset.Corpus{}, fmt.Errorf("failed to store corpus: %w", err)
	}
	return corpus, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
