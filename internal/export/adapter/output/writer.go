package output

import (
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"collection-export/internal/export/domain/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Writer renders a table to w.
type Writer interface {
	Write(w io.Writer, table *model.Table) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(w io.Writer, table *model.Table) error

func (f WriterFunc) Write(w io.Writer, table *model.Table) error { return f(w, table) }

// NewWriter returns the writer for format (case-insensitive).
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriterFunc(WriteCSV), nil
	case FormatJSON:
		return WriterFunc(WriteJSON), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use %s or %s)", format, FormatCSV, FormatJSON)
	}
}

// normalizeValue converts driver types into plain Go values that encode
// predictably. Non-finite floats become nil and binary data becomes base64.
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0).UTC()
	case primitive.Decimal128:
		return val.String()
	case primitive.Binary:
		return base64.StdEncoding.EncodeToString(val.Data)
	case []byte:
		return base64.StdEncoding.EncodeToString(val)
	case primitive.Null, primitive.Undefined:
		return nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case primitive.D:
		m := make(map[string]interface{}, len(val))
		for _, e := range val {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]interface{}, len(val))
		for k, e := range val {
			m[k] = normalizeValue(e)
		}
		return m
	case primitive.A:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
