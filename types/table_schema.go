package types

import (
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/goccy/go-json"
)

// field modes
const (
	ModeNullable = "NULLABLE"
	ModeRequired = "REQUIRED"
	ModeRepeated = "REPEATED"
)

// standard SQL names accepted alongside the legacy type names
var typeAliases = map[string]bigquery.FieldType{
	"INT64":   bigquery.IntegerFieldType,
	"FLOAT64": bigquery.FloatFieldType,
	"BOOL":    bigquery.BooleanFieldType,
	"STRUCT":  bigquery.RecordFieldType,
}

// TableFieldSchema describes a single column. Fields is only set for RECORD columns.
type TableFieldSchema struct {
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Mode        string              `json:"mode,omitempty"`
	Description string              `json:"description,omitempty"`
	Fields      []*TableFieldSchema `json:"fields,omitempty"`
}

// TableSchema is the ordered column list of a destination table. Its JSON form is
// {"fields":[{"name":...,"type":...},...]}.
type TableSchema struct {
	Fields []*TableFieldSchema `json:"fields"`
}

func NewTableSchema(fields ...*TableFieldSchema) *TableSchema {
	return &TableSchema{Fields: append([]*TableFieldSchema{}, fields...)}
}

func NewField(name, fieldType string) *TableFieldSchema {
	return &TableFieldSchema{Name: name, Type: fieldType}
}

// ParseTableSchema decodes the JSON form of a table schema and validates it.
func ParseTableSchema(data string) (*TableSchema, error) {
	var schema *TableSchema
	if err := json.Unmarshal([]byte(data), &schema); err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, fmt.Errorf("table schema is null")
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// Validate checks that every field, nested ones included, is set and has a name and a type.
func (s *TableSchema) Validate() error {
	return validateFields(s.Fields, "")
}

func validateFields(fields []*TableFieldSchema, parent string) error {
	for idx, field := range fields {
		position := fmt.Sprintf("%sfields[%d]", parent, idx)
		switch {
		case field == nil:
			return fmt.Errorf("%s is null", position)
		case field.Name == "":
			return fmt.Errorf("%s has no name", position)
		case field.Type == "":
			return fmt.Errorf("%s (%s) has no type", position, field.Name)
		}
		if err := validateFields(field.Fields, position+"."); err != nil {
			return err
		}
	}
	return nil
}

// ToJSON encodes the schema compactly, preserving field order.
func (s *TableSchema) ToJSON() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FieldType resolves the column type to its BigQuery legacy name.
func (f *TableFieldSchema) FieldType() bigquery.FieldType {
	name := strings.ToUpper(f.Type)
	if alias, found := typeAliases[name]; found {
		return alias
	}
	return bigquery.FieldType(name)
}

func (f *TableFieldSchema) IsRepeated() bool {
	return strings.EqualFold(f.Mode, ModeRepeated)
}

// IsNested reports whether values of this column are not scalars.
func (f *TableFieldSchema) IsNested() bool {
	return f.IsRepeated() || f.FieldType() == bigquery.RecordFieldType
}

func (s *TableSchema) ToBigQuery() bigquery.Schema {
	return fieldsToBigQuery(s.Fields)
}

func fieldsToBigQuery(fields []*TableFieldSchema) bigquery.Schema {
	if len(fields) == 0 {
		return nil
	}
	schema := make(bigquery.Schema, 0, len(fields))
	for _, field := range fields {
		schema = append(schema, &bigquery.FieldSchema{
			Name:        field.Name,
			Description: field.Description,
			Type:        field.FieldType(),
			Repeated:    field.IsRepeated(),
			Required:    strings.EqualFold(field.Mode, ModeRequired),
			Schema:      fieldsToBigQuery(field.Fields),
		})
	}
	return schema
}

// TableSchemaFromBigQuery converts a client library schema, e.g. from table metadata.
func TableSchemaFromBigQuery(schema bigquery.Schema) *TableSchema {
	return &TableSchema{Fields: fieldsFromBigQuery(schema)}
}

func fieldsFromBigQuery(schema bigquery.Schema) []*TableFieldSchema {
	if len(schema) == 0 {
		return nil
	}
	fields := make([]*TableFieldSchema, 0, len(schema))
	for _, field := range schema {
		mode := ""
		switch {
		case field.Repeated:
			mode = ModeRepeated
		case field.Required:
			mode = ModeRequired
		}
		fields = append(fields, &TableFieldSchema{
			Name:        field.Name,
			Type:        string(field.Type),
			Mode:        mode,
			Description: field.Description,
			Fields:      fieldsFromBigQuery(field.Schema),
		})
	}
	return fields
}
