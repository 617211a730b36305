package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"collection-export/internal/export/domain/model"
)

// WriteJSON writes the table as a JSON array of objects whose keys follow
// the column order. Null cells are written as null.
func WriteJSON(w io.Writer, table *model.Table) error {
	bw := bufio.NewWriter(w)

	bw.WriteByte('[')
	for i, row := range table.Rows {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteByte('{')
		for j, col := range table.Columns {
			if j > 0 {
				bw.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return err
			}
			val, err := json.Marshal(normalizeValue(row[col]))
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", i, col, err)
			}
			bw.Write(key)
			bw.WriteByte(':')
			bw.Write(val)
		}
		bw.WriteByte('}')
	}
	bw.WriteString("]\n")

	return bw.Flush()
}
