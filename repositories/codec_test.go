package repositories

import (
	"math"
	"persona-lab/ai"
	"persona-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestEncodeDecodeModel_ExactWeights(t *testing.T) {
	req := require.New(t)
	params := ai.Hyperparameters{MappingSize: 6, BatchSize: 1000, Alpha: 0.2, C: 1e-4}
	theta := []float64{-1, 0.1 + 0.2, math.SmallestNonzeroFloat64, -math.MaxFloat64, math.Copysign(0, -1), 1.0 / 3}
	m, err := ai.RestoreModel(params, theta)
	req.NoError(err)

	decoded, err := DecodeModel(EncodeModel(m))
	req.NoError(err)
	req.Equal(params, decoded.Hyperparameters())
	for i, w := range decoded.Theta() {
		req.Equal(math.Float64bits(theta[i]), math.Float64bits(w))
	}
}

func TestEncodeDecodeModel_TrainedModel(t *testing.T) {
	req := require.New(t)
	m, err := ai.NewModel(ai.Hyperparameters{MappingSize: 64, BatchSize: 2, Alpha: 0.3, C: 0.01})
	req.NoError(err)
	x, err := ai.NewMatrixFromRows(64, []ai.FeatureVector{{1, 9}, {4}, {9, 63}, {0}})
	req.NoError(err)
	_, err = m.Fit(x, []int{1, 0, 1, 0})
	req.NoError(err)

	decoded, err := DecodeModel(EncodeModel(m))
	req.NoError(err)
	req.Equal(m.Theta(), decoded.Theta())

	want, err := m.Predict(x)
	req.NoError(err)
	got, err := decoded.Predict(x)
	req.NoError(err)
	req.Equal(want, got)
}

func TestDecodeModel_Corrupt(t *testing.T) {
	req := require.New(t)
	m, err := ai.NewModel(ai.DefaultHyperparameters(4))
	req.NoError(err)
	payload := EncodeModel(m)

	_, err = DecodeModel(payload[:len(payload)-3])
	req.ErrorIs(err, errors.ErrCorruptRecord)

	// A theta field whose length disagrees with the mapping size
	var b []byte
	b = protowire.AppendTag(b, modelMappingSize, protowire.VarintType)
	b = protowire.AppendVarint(b, 3)
	b = protowire.AppendTag(b, modelBatchSize, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	b = protowire.AppendTag(b, modelAlpha, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(0.1))
	b = protowire.AppendTag(b, modelTheta, protowire.BytesType)
	b = protowire.AppendBytes(b, protowire.AppendFixed64(nil, 0))
	_, err = DecodeModel(b)
	req.ErrorIs(err, errors.ErrCorruptRecord)
	req.ErrorIs(err, errors.ErrDimensionMismatch)
}

func TestDecodeModel_SkipsUnknownFields(t *testing.T) {
	req := require.New(t)
	m, err := ai.NewModel(ai.DefaultHyperparameters(2))
	req.NoError(err)
	payload := EncodeModel(m)
	payload = protowire.AppendTag(payload, 99, protowire.BytesType)
	payload = protowire.AppendString(payload, "future field")

	decoded, err := DecodeModel(payload)
	req.NoError(err)
	req.Equal(m.Theta(), decoded.Theta())
}
