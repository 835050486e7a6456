package repositories

import (
	"fmt"
	"math"
	"persona-lab/ai"
	"persona-lab/errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the persisted model message.
const (
	modelMappingSize protowire.Number = 1
	modelBatchSize   protowire.Number = 2
	modelAlpha       protowire.Number = 3
	modelC           protowire.Number = 4
	modelTheta       protowire.Number = 5
)

// EncodeModel serializes a model with the protobuf wire format.
// Weights are stored as their IEEE-754 bit patterns so decoding is exact.
func EncodeModel(m *ai.Model) []byte {
	params := m.Hyperparameters()
	theta := m.Theta()

	var b []byte
	b = protowire.AppendTag(b, modelMappingSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(params.MappingSize))
	b = protowire.AppendTag(b, modelBatchSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(params.BatchSize))
	b = protowire.AppendTag(b, modelAlpha, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(params.Alpha))
	b = protowire.AppendTag(b, modelC, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(params.C))

	packed := make([]byte, 0, 8*len(theta))
	for _, w := range theta {
		packed = protowire.AppendFixed64(packed, math.Float64bits(w))
	}
	b = protowire.AppendTag(b, modelTheta, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	return b
}

// DecodeModel rebuilds a model written by EncodeModel.
func DecodeModel(b []byte) (*ai.Model, error) {
	var params ai.Hyperparameters
	var theta []float64
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == modelMappingSize && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(v)
			params.MappingSize = int(x)
			return n, nil
		case num == modelBatchSize && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(v)
			params.BatchSize = int(x)
			return n, nil
		case num == modelAlpha && typ == protowire.Fixed64Type:
			x, n := protowire.ConsumeFixed64(v)
			params.Alpha = math.Float64frombits(x)
			return n, nil
		case num == modelC && typ == protowire.Fixed64Type:
			x, n := protowire.ConsumeFixed64(v)
			params.C = math.Float64frombits(x)
			return n, nil
		case num == modelTheta && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(v)
			if n < 0 {
				return n, nil
			}
			if len(packed)%8 != 0 {
				return 0, fmt.Errorf("%w: theta payload of %d bytes", errors.ErrCorruptRecord, len(packed))
			}
			theta = make([]float64, 0, len(packed)/8)
			for len(packed) > 0 {
				x, m := protowire.ConsumeFixed64(packed)
				theta = append(theta, math.Float64frombits(x))
				packed = packed[m:]
			}
			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, v), nil
		}
	})
	if err != nil {
		return nil, err
	}
	m, err := ai.RestoreModel(params, theta)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrCorruptRecord, err)
	}
	return m, nil
}

// walkFields iterates over the top-level fields of a wire-format message.
// fn receives the bytes following the tag and returns how many it consumed.
func walkFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", errors.ErrCorruptRecord, protowire.ParseError(n))
		}
		b = b[n:]
		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return fmt.Errorf("%w: %w", errors.ErrCorruptRecord, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}
