package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// InspectRow is a human readable view of one stored key.
type InspectRow struct {
	Key    string
	Type   string
	Detail string
}

// Inspect decodes up to limit keys under prefix. Secondary indexes are skipped
// unless prefix targets them. A limit of zero or less means no limit.
func Inspect(db *badger.DB, prefix string, limit int) ([]InspectRow, error) {
	var rows []InspectRow
	skipIndex := !strings.HasPrefix(prefix, "idx:")
	err := db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(prefix)
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(rows) >= limit {
				return nil
			}
			item := it.Item()
			key := string(item.Key())
			if skipIndex && strings.HasPrefix(key, "idx:") {
				continue
			}
			err := item.Value(func(v []byte) error {
				rows = append(rows, mapRow(key, v))
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
	return rows, nil
}

func mapRow(key string, val []byte) InspectRow {
	row := InspectRow{Key: key, Type: "RAW", Detail: "Size: " + strconv.Itoa(len(val)) + " bytes"}
	switch {
	case strings.HasPrefix(key, modelPrefix):
		record, err := decodeRecord(val)
		if err != nil {
			row.Type, row.Detail = "CORRUPT", err.Error()
			return row
		}
		params := record.Model.Hyperparameters()
		row.Type = "MODEL"
		row.Detail = fmt.Sprintf("corpus=%s mapping=%d batch=%d epochs=%d test=%.4f",
			record.Corpus, params.MappingSize, params.BatchSize, record.Epochs, record.TestAccuracy)
	case strings.HasPrefix(key, "corpus:"):
		subject, label, err := decodeRow(val)
		if err != nil {
			row.Type, row.Detail = "CORRUPT", err.Error()
			return row
		}
		row.Type = "ROW"
		row.Detail = fmt.Sprintf("%d %q", label, subject)
	case strings.HasPrefix(key, "idx:"):
		row.Type = "INDEX"
		row.Detail = "-> " + string(val)
	}
	return row
}
