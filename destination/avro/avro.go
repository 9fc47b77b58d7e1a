package avro

import (
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/datazip-inc/bqoutput/utils/typeutils"
	"github.com/goccy/go-json"
	"github.com/linkedin/goavro/v2"
)

const (
	Type = "avro.AvroOutputFormat"

	recordName = "bigquery_row"
	// records per OCF block
	blockSize = 1000
)

// AvroOutputFormat writes deflate compressed Avro object container files. Columns
// that are neither REQUIRED nor nested become ["null", T] unions.
type AvroOutputFormat struct{}

func (a *AvroOutputFormat) Type() string {
	return Type
}

func (a *AvroOutputFormat) FileFormat() types.FileFormat {
	return types.Avro
}

type column struct {
	field    *types.TableFieldSchema
	avroType string
	required bool
}

func (a *AvroOutputFormat) NewRecordWriter(w io.Writer, schema *types.TableSchema) (destination.RecordWriter, error) {
	if schema == nil || len(schema.Fields) == 0 {
		return nil, fmt.Errorf("avro output requires a table schema")
	}

	columns := make([]column, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		columns = append(columns, column{
			field:    field,
			avroType: avroType(field),
			required: strings.EqualFold(field.Mode, types.ModeRequired),
		})
	}

	avroSchema, err := buildSchema(columns)
	if err != nil {
		return nil, err
	}

	writer, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               w,
		Schema:          avroSchema,
		CompressionName: goavro.CompressionDeflateLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create avro writer: %s", err)
	}

	return &recordWriter{writer: writer, columns: columns}, nil
}

// avroType maps a BigQuery column to an Avro primitive; nested values are carried as JSON text.
func avroType(field *types.TableFieldSchema) string {
	if field.IsNested() {
		return "string"
	}
	switch field.FieldType() {
	case bigquery.IntegerFieldType:
		return "long"
	case bigquery.FloatFieldType:
		return "double"
	case bigquery.BooleanFieldType:
		return "boolean"
	case bigquery.BytesFieldType:
		return "bytes"
	default:
		return "string"
	}
}

func buildSchema(columns []column) (string, error) {
	fields := make([]map[string]any, 0, len(columns))
	for _, col := range columns {
		field := map[string]any{"name": col.field.Name}
		if col.required {
			field["type"] = col.avroType
		} else {
			field["type"] = []string{"null", col.avroType}
			field["default"] = nil
		}
		fields = append(fields, field)
	}

	data, err := json.Marshal(map[string]any{
		"type":   "record",
		"name":   recordName,
		"fields": fields,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build avro schema: %s", err)
	}
	return string(data), nil
}

type recordWriter struct {
	writer  *goavro.OCFWriter
	columns []column
	pending []any
}

func (r *recordWriter) Write(record types.Record) error {
	datum := make(map[string]any, len(r.columns))
	for _, col := range r.columns {
		value, err := col.native(record[col.field.Name])
		if err != nil {
			return fmt.Errorf("column %s: %s", col.field.Name, err)
		}
		datum[col.field.Name] = value
	}

	r.pending = append(r.pending, datum)
	if len(r.pending) >= blockSize {
		return r.flush()
	}
	return nil
}

func (r *recordWriter) flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.writer.Append(r.pending); err != nil {
		return err
	}
	r.pending = r.pending[:0]
	return nil
}

func (r *recordWriter) Close() error {
	return r.flush()
}

func (c column) native(value any) (any, error) {
	if value == nil {
		if c.required {
			return nil, fmt.Errorf("value is required")
		}
		return nil, nil
	}

	var (
		converted any
		err       error
	)
	switch c.avroType {
	case "long":
		converted, err = typeutils.ToInt64(value)
	case "double":
		converted, err = typeutils.ToFloat64(value)
	case "boolean":
		converted, err = typeutils.ToBool(value)
	case "bytes":
		var text string
		text, err = typeutils.ToString(value)
		converted = []byte(text)
	default:
		converted, err = typeutils.ToString(value)
	}
	if err != nil {
		return nil, err
	}

	if c.required {
		return converted, nil
	}
	return goavro.Union(c.avroType, converted), nil
}

func init() {
	destination.RegisteredOutputFormats[Type] = func() destination.OutputFormat {
		return &AvroOutputFormat{}
	}
}
