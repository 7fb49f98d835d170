package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cognicore/langid/pkg/langid/alphabet"
	"github.com/cognicore/langid/pkg/langid/internalerr"
	"github.com/cognicore/langid/pkg/langid/store"
)

// WriteCSV writes rows as a classifier-ready table: a language column followed
// by one column per feature. Lowercase-set columns are headed by their
// character and uppercase-set columns by "big:" plus the character, so the
// two channels stay distinct.
func WriteCSV(w io.Writer, rows []store.Row, alpha *alphabet.Alphabet) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, alpha.Len()+1)
	header = append(header, "language")
	for _, r := range alpha.Lower() {
		header = append(header, string(r))
	}
	for _, r := range alpha.Upper() {
		header = append(header, "big:"+string(r))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range rows {
		if len(row.Vector) != alpha.Len() {
			return fmt.Errorf("row %s has %d features, alphabet has %d: %w",
				row.ID, len(row.Vector), alpha.Len(), internalerr.ErrInvalidInput)
		}
		record[0] = row.Language
		for i, c := range row.Vector {
			record[i+1] = strconv.Itoa(c)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
