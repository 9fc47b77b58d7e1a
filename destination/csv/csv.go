package csv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/datazip-inc/bqoutput/utils/typeutils"
)

const Type = "csv.CSVOutputFormat"

// CSVOutputFormat writes headerless rows with columns in schema order, the layout
// a load job with skipLeadingRows=0 expects. Nested columns are written as JSON text.
type CSVOutputFormat struct{}

func (c *CSVOutputFormat) Type() string {
	return Type
}

func (c *CSVOutputFormat) FileFormat() types.FileFormat {
	return types.CSV
}

func (c *CSVOutputFormat) NewRecordWriter(w io.Writer, schema *types.TableSchema) (destination.RecordWriter, error) {
	if schema == nil || len(schema.Fields) == 0 {
		return nil, fmt.Errorf("csv output requires a table schema")
	}

	columns := make([]string, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		columns = append(columns, field.Name)
	}
	return &recordWriter{writer: csv.NewWriter(w), columns: columns}, nil
}

type recordWriter struct {
	writer  *csv.Writer
	columns []string
}

func (r *recordWriter) Write(record types.Record) error {
	row := make([]string, len(r.columns))
	for idx, column := range r.columns {
		value, found := record[column]
		if !found || value == nil {
			continue
		}
		cell, err := typeutils.ToString(value)
		if err != nil {
			return fmt.Errorf("column %s: %s", column, err)
		}
		row[idx] = cell
	}
	return r.writer.Write(row)
}

func (r *recordWriter) Close() error {
	r.writer.Flush()
	return r.writer.Error()
}

func init() {
	destination.RegisteredOutputFormats[Type] = func() destination.OutputFormat {
		return &CSVOutputFormat{}
	}
}
