package jsonl

import (
	"bufio"
	"io"

	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/goccy/go-json"
)

const Type = "jsonl.TextOutputFormat"

// TextOutputFormat writes one JSON object per line. The schema is optional since
// BigQuery maps JSON keys to columns by name.
type TextOutputFormat struct{}

func (t *TextOutputFormat) Type() string {
	return Type
}

func (t *TextOutputFormat) FileFormat() types.FileFormat {
	return types.NewlineDelimitedJSON
}

func (t *TextOutputFormat) NewRecordWriter(w io.Writer, _ *types.TableSchema) (destination.RecordWriter, error) {
	buffered := bufio.NewWriter(w)
	return &recordWriter{
		buffered: buffered,
		encoder:  json.NewEncoder(buffered),
	}, nil
}

type recordWriter struct {
	buffered *bufio.Writer
	encoder  *json.Encoder
}

// Encode terminates each value with a newline.
func (r *recordWriter) Write(record types.Record) error {
	return r.encoder.Encode(record)
}

func (r *recordWriter) Close() error {
	return r.buffered.Flush()
}

func init() {
	destination.RegisteredOutputFormats[Type] = func() destination.OutputFormat {
		return &TextOutputFormat{}
	}
}
