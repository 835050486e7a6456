package services

import (
	"log/slog"
	"os"
	"path/filepath"
	"persona-lab/dataset"
	"persona-lab/errors"
	"persona-lab/mocks"
	"persona-lab/source"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const identityTriples = `<http://example.org/ada> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://xmlns.com/foaf/0.1/Person> .
<http://example.org/alan> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://xmlns.com/foaf/0.1/Person> .
<http://example.org/grace> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://xmlns.com/foaf/0.1/Person> .
`

const mapTriples = `<http://example.org/ada> <http://xmlns.com/foaf/0.1/name> "Ada Lovelace" .
<http://example.org/paris> <http://xmlns.com/foaf/0.1/name> "Paris" .
<http://example.org/alan> <http://xmlns.com/foaf/0.1/name> "Alan Turing" .
<http://example.org/grace> <http://xmlns.com/foaf/0.1/name> "Grace Hopper" .
<http://example.org/rome> <http://xmlns.com/foaf/0.1/name> "Rome" .
`

func writeGraph(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	identity := filepath.Join(dir, "identity.nt")
	mapping := filepath.Join(dir, "map.nt")
	require.NoError(t, os.WriteFile(identity, []byte(identityTriples), 0o600))
	require.NoError(t, os.WriteFile(mapping, []byte(mapTriples), 0o600))
	return identity, mapping
}

func buildRequest(identity, mapping string) BuildRequest {
	return BuildRequest{
		Name:         "people",
		IdentityPath: identity,
		MapPath:      mapping,
		TypeIRI:      source.FOAFPerson,
		Predicate:    source.FOAFName,
		Balance:      true,
	}
}

func TestDatasetService_Build(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockICorpusRepository(ctrl)
	service := NewDatasetService(logs.GetLoggerFromLevel(slog.LevelDebug), repository)
	identity, mapping := writeGraph(t)

	var stored dataset.Corpus
	repository.EXPECT().StoreCorpus("people", gomock.Any()).DoAndReturn(func(name string, c dataset.Corpus) error {
		stored = c
		return nil
	})

	corpus, err := service.Build(buildRequest(identity, mapping))
	req.NoError(err)
	req.Equal([]string{"Ada Lovelace", "Alan Turing", "Paris", "Rome"}, corpus.Subjects)
	req.Equal([]int{1, 1, 0, 0}, corpus.Labels)
	req.Equal(corpus, stored)
}

func TestDatasetService_Build_Unbalanced(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockICorpusRepository(ctrl)
	service := NewDatasetService(logs.GetLoggerFromLevel(slog.LevelDebug), repository)
	identity, mapping := writeGraph(t)
	repository.EXPECT().StoreCorpus("people", gomock.Any()).Return(nil)

	request := buildRequest(identity, mapping)
	request.Balance = false
	corpus, err := service.Build(request)
	req.NoError(err)
	req.Equal(5, corpus.Len())
	req.Equal(3, corpus.Positives())
}

func TestDatasetService_Build_Errors(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockICorpusRepository(ctrl)
	service := NewDatasetService(logs.GetLoggerFromLevel(slog.LevelDebug), repository)
	identity, mapping := writeGraph(t)
	repository.EXPECT().StoreCorpus(gomock.Any(), gomock.Any()).Times(0)

	tests := []struct {
		description string
		modify      func(r *BuildRequest)
		target      error
	}{
		{
			"Should fail when the identity file is missing",
			func(r *BuildRequest) { r.IdentityPath = filepath.Join(t.TempDir(), "identity") },
			errors.ErrInputNotFound,
		},
		{
			"Should fail when the map file is missing",
			func(r *BuildRequest) { r.MapPath = filepath.Join(t.TempDir(), "map") },
			errors.ErrInputNotFound,
		},
		{
			"Should fail when no subject carries the predicate",
			func(r *BuildRequest) { r.Predicate = "http://xmlns.com/foaf/0.1/nick" },
			errors.ErrEmptyDataset,
		},
		{
			"Should fail without a name",
			func(r *BuildRequest) { r.Name = "" },
			nil,
		},
		{
			"Should fail with a separator in the name",
			func(r *BuildRequest) { r.Name = "a:b" },
			nil,
		},
	}
	for _, tt := range tests {
		request := buildRequest(identity, mapping)
		tt.modify(&request)
		_, err := service.Build(request)
		req.Error(err, tt.description)
		if tt.target != nil {
			req.ErrorIs(err, tt.target, tt.description)
		}
	}
}
