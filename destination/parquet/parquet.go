package parquet

import (
	"fmt"
	"io"

	"cloud.google.com/go/bigquery"
	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/datazip-inc/bqoutput/utils/typeutils"
	goparquet "github.com/parquet-go/parquet-go"
)

const (
	Type = "parquet.ParquetOutputFormat"

	schemaName = "bigquery_row"
)

// ParquetOutputFormat writes snappy compressed parquet files with one optional
// column per schema field. Nested columns are stored as JSON strings.
type ParquetOutputFormat struct{}

func (p *ParquetOutputFormat) Type() string {
	return Type
}

func (p *ParquetOutputFormat) FileFormat() types.FileFormat {
	return types.Parquet
}

func (p *ParquetOutputFormat) NewRecordWriter(w io.Writer, schema *types.TableSchema) (destination.RecordWriter, error) {
	if schema == nil || len(schema.Fields) == 0 {
		return nil, fmt.Errorf("parquet output requires a table schema")
	}

	group := goparquet.Group{}
	fields := make(map[string]*types.TableFieldSchema, len(schema.Fields))
	for _, field := range schema.Fields {
		if _, duplicate := fields[field.Name]; duplicate {
			return nil, fmt.Errorf("duplicate column %s in table schema", field.Name)
		}
		fields[field.Name] = field
		group[field.Name] = goparquet.Optional(parquetNode(field))
	}
	pqSchema := goparquet.NewSchema(schemaName, group)

	// group columns are ordered by name, rows are built in the same order
	columns := make([]*types.TableFieldSchema, 0, len(schema.Fields))
	for _, field := range pqSchema.Fields() {
		columns = append(columns, fields[field.Name()])
	}

	return &recordWriter{
		writer:  goparquet.NewWriter(w, pqSchema, goparquet.Compression(&goparquet.Snappy)),
		columns: columns,
	}, nil
}

func parquetNode(field *types.TableFieldSchema) goparquet.Node {
	if field.IsNested() {
		return goparquet.String()
	}
	switch field.FieldType() {
	case bigquery.IntegerFieldType:
		return goparquet.Leaf(goparquet.Int64Type)
	case bigquery.FloatFieldType:
		return goparquet.Leaf(goparquet.DoubleType)
	case bigquery.BooleanFieldType:
		return goparquet.Leaf(goparquet.BooleanType)
	case bigquery.BytesFieldType:
		return goparquet.Leaf(goparquet.ByteArrayType)
	default:
		return goparquet.String()
	}
}

type recordWriter struct {
	writer  *goparquet.Writer
	columns []*types.TableFieldSchema
}

func (r *recordWriter) Write(record types.Record) error {
	row := make(goparquet.Row, 0, len(r.columns))
	for idx, field := range r.columns {
		value, found := record[field.Name]
		if !found || value == nil {
			row = append(row, goparquet.NullValue().Level(0, 0, idx))
			continue
		}

		converted, err := toValue(field, value)
		if err != nil {
			return fmt.Errorf("column %s: %s", field.Name, err)
		}
		row = append(row, converted.Level(0, 1, idx))
	}

	_, err := r.writer.WriteRows([]goparquet.Row{row})
	return err
}

func toValue(field *types.TableFieldSchema, value any) (goparquet.Value, error) {
	if !field.IsNested() {
		switch field.FieldType() {
		case bigquery.IntegerFieldType:
			v, err := typeutils.ToInt64(value)
			return goparquet.Int64Value(v), err
		case bigquery.FloatFieldType:
			v, err := typeutils.ToFloat64(value)
			return goparquet.DoubleValue(v), err
		case bigquery.BooleanFieldType:
			v, err := typeutils.ToBool(value)
			return goparquet.BooleanValue(v), err
		}
	}
	v, err := typeutils.ToString(value)
	return goparquet.ByteArrayValue([]byte(v)), err
}

func (r *recordWriter) Close() error {
	return r.writer.Close()
}

func init() {
	destination.RegisteredOutputFormats[Type] = func() destination.OutputFormat {
		return &ParquetOutputFormat{}
	}
}
