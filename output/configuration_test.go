package output

import (
	"errors"
	"testing"

	"github.com/datazip-inc/bqoutput/destination/jsonl"
	"github.com/datazip-inc/bqoutput/destination/parquet"
	"github.com/datazip-inc/bqoutput/jobconf"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProjectID = "domain:project"
	testDatasetID = "dataset"
	testTableID   = "table"

	testFileFormat = types.NewlineDelimitedJSON

	testTableSchemaString    = `{"fields":[{"name":"A","type":"STRING"},{"name":"B","type":"INTEGER"}]}`
	testBadTableSchemaString = `{"fields":[{name:"A",type:"STRING"},{name:"B",type:"INTEGER"}]}`
)

var (
	testOutputFormat = &jsonl.TextOutputFormat{}
	testTableRef     = types.NewTableReference(testProjectID, testDatasetID, testTableID)
)

func testTableSchema() *types.TableSchema {
	return types.NewTableSchema(types.NewField("A", "STRING"), types.NewField("B", "INTEGER"))
}

// validConf holds every required key
func validConf() *jobconf.JobConf {
	conf := jobconf.New()
	conf.Set(ProjectIDKey, testProjectID)
	conf.Set(DatasetIDKey, testDatasetID)
	conf.Set(TableIDKey, testTableID)
	conf.Set(FileFormatKey, testFileFormat.Name())
	conf.Set(OutputFormatClassKey, testOutputFormat.Type())
	conf.Set(TableSchemaKey, testTableSchemaString)
	return conf
}

func assertConfigured(t *testing.T, conf *jobconf.JobConf) {
	t.Helper()
	expected := map[string]string{
		ProjectIDKey:         testProjectID,
		DatasetIDKey:         testDatasetID,
		TableIDKey:           testTableID,
		FileFormatKey:        testFileFormat.Name(),
		OutputFormatClassKey: testOutputFormat.Type(),
		TableSchemaKey:       testTableSchemaString,
	}
	assert.Equal(t, expected, conf.ToMap())
}

func TestConfigure(t *testing.T) {
	conf := jobconf.New()
	err := Configure(conf, testProjectID, testDatasetID, testTableID, testFileFormat, testOutputFormat, testTableSchema())
	require.NoError(t, err)
	assertConfigured(t, conf)
}

func TestConfigureWithQualifiedName(t *testing.T) {
	conf := jobconf.New()
	err := ConfigureWithQualifiedName(conf, testProjectID+":"+testDatasetID+"."+testTableID, testFileFormat, testOutputFormat, testTableSchema())
	require.NoError(t, err)
	assertConfigured(t, conf)
}

func TestConfigureWithQualifiedName_Malformed(t *testing.T) {
	for _, name := range []string{"dataset.table", "project:dataset", "project:.table", ""} {
		conf := jobconf.New()
		err := ConfigureWithQualifiedName(conf, name, testFileFormat, testOutputFormat, testTableSchema())
		assert.ErrorIs(t, err, ErrIllegalArgument, "name %q", name)
		assert.Equal(t, 0, conf.Len())
	}
}

func TestConfigure_MissingArguments(t *testing.T) {
	tests := []struct {
		name         string
		projectID    string
		datasetID    string
		tableID      string
		fileFormat   types.FileFormat
		outputFormat *jsonl.TextOutputFormat
		schema       *types.TableSchema
	}{
		{name: "project id", datasetID: testDatasetID, tableID: testTableID, fileFormat: testFileFormat, outputFormat: testOutputFormat, schema: testTableSchema()},
		{name: "dataset id", projectID: testProjectID, tableID: testTableID, fileFormat: testFileFormat, outputFormat: testOutputFormat, schema: testTableSchema()},
		{name: "table id", projectID: testProjectID, datasetID: testDatasetID, fileFormat: testFileFormat, outputFormat: testOutputFormat, schema: testTableSchema()},
		{name: "file format", projectID: testProjectID, datasetID: testDatasetID, tableID: testTableID, fileFormat: "json", outputFormat: testOutputFormat, schema: testTableSchema()},
		{name: "schema", projectID: testProjectID, datasetID: testDatasetID, tableID: testTableID, fileFormat: testFileFormat, outputFormat: testOutputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := jobconf.New()
			err := Configure(conf, tt.projectID, tt.datasetID, tt.tableID, tt.fileFormat, tt.outputFormat, tt.schema)
			assert.ErrorIs(t, err, ErrIllegalArgument)
			assert.Equal(t, 0, conf.Len(), "no key may be written on failure")
		})
	}
}

func TestConfigure_NilOutputFormat(t *testing.T) {
	conf := jobconf.New()
	err := Configure(conf, testProjectID, testDatasetID, testTableID, testFileFormat, nil, testTableSchema())
	assert.ErrorIs(t, err, ErrIllegalArgument)
	assert.Equal(t, 0, conf.Len())
}

func TestConfigure_InvalidSchema(t *testing.T) {
	schemas := []*types.TableSchema{
		{Fields: []*types.TableFieldSchema{nil}},
		types.NewTableSchema(types.NewField("", "STRING")),
		types.NewTableSchema(&types.TableFieldSchema{Name: "r", Type: "RECORD", Fields: []*types.TableFieldSchema{types.NewField("x", "")}}),
	}

	for _, schema := range schemas {
		conf := jobconf.New()
		err := Configure(conf, testProjectID, testDatasetID, testTableID, testFileFormat, &jsonl.TextOutputFormat{}, schema)
		assert.ErrorIs(t, err, ErrIllegalArgument)
		assert.Equal(t, 0, conf.Len())
	}
}

func TestConfigure_ThenValidate(t *testing.T) {
	schemas := []*types.TableSchema{
		testTableSchema(),
		types.NewTableSchema(),
		types.NewTableSchema(&types.TableFieldSchema{Name: "r", Type: "RECORD", Mode: types.ModeRepeated, Fields: []*types.TableFieldSchema{types.NewField("x", "FLOAT")}}),
	}

	for _, format := range types.FileFormatNames() {
		for _, schema := range schemas {
			conf := jobconf.New()
			require.NoError(t, ConfigureWithQualifiedName(conf, "example.com:p:d.t", types.FileFormat(format), &parquet.ParquetOutputFormat{}, schema))
			assert.NoError(t, ValidateConfiguration(conf))
		}
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := validConf()
	before := conf.ToMap()

	assert.NoError(t, ValidateConfiguration(conf))
	assert.Equal(t, before, conf.ToMap())
}

func TestValidateConfiguration_MissingKey(t *testing.T) {
	for _, key := range requiredKeys {
		t.Run(key, func(t *testing.T) {
			conf := validConf()
			conf.Unset(key)

			err := ValidateConfiguration(conf)
			assert.ErrorIs(t, err, ErrMalformedConfiguration)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestValidateConfiguration_EmptyValueIsMissing(t *testing.T) {
	conf := validConf()
	conf.Set(DatasetIDKey, "")
	assert.ErrorIs(t, ValidateConfiguration(conf), ErrMalformedConfiguration)
}

var badTableSchemas = []struct {
	name   string
	schema string
}{
	{name: "unquoted keys", schema: testBadTableSchemaString},
	{name: "null document", schema: `null`},
	{name: "null field", schema: `{"fields":[null]}`},
	{name: "empty field", schema: `{"fields":[{}]}`},
	{name: "field without type", schema: `{"fields":[{"name":"A"}]}`},
	{name: "null nested field", schema: `{"fields":[{"name":"r","type":"RECORD","fields":[null]}]}`},
	{name: "nested field without name", schema: `{"fields":[{"name":"r","type":"RECORD","fields":[{"type":"STRING"}]}]}`},
}

func TestValidateConfiguration_BadSchema(t *testing.T) {
	for _, tc := range badTableSchemas {
		t.Run(tc.name, func(t *testing.T) {
			conf := validConf()
			conf.Set(TableSchemaKey, tc.schema)

			err := ValidateConfiguration(conf)
			assert.ErrorIs(t, err, ErrMalformedConfiguration)
			assert.Contains(t, err.Error(), TableSchemaKey)
		})
	}
}

func TestValidateConfiguration_BadFileFormat(t *testing.T) {
	conf := validConf()
	conf.Set(FileFormatKey, "newline_delimited_json")

	err := ValidateConfiguration(conf)
	assert.ErrorIs(t, err, ErrIllegalArgument)
	assert.False(t, errors.Is(err, ErrMalformedConfiguration))
}

func TestValidateConfiguration_WrongOutputFormat(t *testing.T) {
	conf := validConf()
	conf.Set(OutputFormatClassKey, "xml.OutputFormat")

	err := ValidateConfiguration(conf)
	assert.ErrorIs(t, err, ErrMalformedConfiguration)
}

func TestValidateConfiguration_OptionalKeys(t *testing.T) {
	conf := validConf()
	conf.Set(WriteDispositionKey, "WRITE_SOMETIMES")
	assert.ErrorIs(t, ValidateConfiguration(conf), ErrIllegalArgument)

	conf = validConf()
	conf.Set(CleanupTemporaryDataKey, "maybe")
	assert.ErrorIs(t, ValidateConfiguration(conf), ErrMalformedConfiguration)

	conf = validConf()
	require.NoError(t, SetWriteDisposition(conf, types.WriteTruncate))
	SetCleanupTemporaryData(conf, false)
	assert.NoError(t, ValidateConfiguration(conf))
}

func TestDiagnose(t *testing.T) {
	assert.NoError(t, Diagnose(validConf()))

	conf := validConf()
	conf.Unset(DatasetIDKey)
	conf.Set(FileFormatKey, "csv")
	conf.Set(TableSchemaKey, testBadTableSchemaString)

	err := Diagnose(conf)
	var multErr *multierror.Error
	require.True(t, errors.As(err, &multErr))
	assert.Len(t, multErr.Errors, 3)
}

func TestGetTableReference(t *testing.T) {
	conf := jobconf.New()
	conf.Set(ProjectIDKey, testProjectID)
	conf.Set(DatasetIDKey, testDatasetID)
	conf.Set(TableIDKey, testTableID)

	ref, err := GetTableReference(conf)
	require.NoError(t, err)
	assert.Equal(t, testTableRef, ref)
}

func TestGetTableReference_MissingKey(t *testing.T) {
	conf := jobconf.New()
	conf.Set(ProjectIDKey, testProjectID)
	conf.Set(DatasetIDKey, testDatasetID)

	_, err := GetTableReference(conf)
	assert.ErrorIs(t, err, ErrMalformedConfiguration)

	conf = jobconf.New()
	conf.Set(DatasetIDKey, testDatasetID)
	conf.Set(TableIDKey, testTableID)
	_, err = GetTableReference(conf)
	assert.ErrorIs(t, err, ErrMalformedConfiguration)
}

func TestGetTableReference_BackupProjectID(t *testing.T) {
	conf := jobconf.New()
	conf.Set(jobconf.ProjectIDKey, testProjectID)
	conf.Set(DatasetIDKey, testDatasetID)
	conf.Set(TableIDKey, testTableID)

	ref, err := GetTableReference(conf)
	require.NoError(t, err)
	assert.Equal(t, testTableRef, ref)

	// the output project id wins when both are set
	conf.Set(ProjectIDKey, "other")
	ref, err = GetTableReference(conf)
	require.NoError(t, err)
	assert.Equal(t, "other", ref.ProjectID)
}

func TestGetTableSchema(t *testing.T) {
	conf := jobconf.New()
	conf.Set(TableSchemaKey, testTableSchemaString)

	schema, err := GetTableSchema(conf)
	require.NoError(t, err)
	assert.Equal(t, testTableSchema(), schema)
}

func TestGetTableSchema_Absent(t *testing.T) {
	schema, err := GetTableSchema(jobconf.New())
	assert.NoError(t, err)
	assert.Nil(t, schema)
}

func TestGetTableSchema_BadSchema(t *testing.T) {
	for _, tc := range badTableSchemas {
		t.Run(tc.name, func(t *testing.T) {
			conf := jobconf.New()
			conf.Set(TableSchemaKey, tc.schema)

			schema, err := GetTableSchema(conf)
			assert.ErrorIs(t, err, ErrMalformedConfiguration)
			assert.Contains(t, err.Error(), TableSchemaKey)
			assert.Nil(t, schema)
		})
	}
}

func TestGetTableSchema_InverseOfSerialization(t *testing.T) {
	schema := types.NewTableSchema(
		types.NewField("id", "INTEGER"),
		&types.TableFieldSchema{Name: "nested", Type: "RECORD", Fields: []*types.TableFieldSchema{types.NewField("a", "STRING")}},
	)
	data, err := schema.ToJSON()
	require.NoError(t, err)

	conf := jobconf.New()
	conf.Set(TableSchemaKey, data)
	parsed, err := GetTableSchema(conf)
	require.NoError(t, err)
	assert.Equal(t, schema, parsed)
}

func TestGetters(t *testing.T) {
	conf := validConf()

	fileFormat, err := GetFileFormat(conf)
	require.NoError(t, err)
	assert.Equal(t, testFileFormat, fileFormat)

	outputFormat, err := GetOutputFormat(conf)
	require.NoError(t, err)
	assert.Equal(t, jsonl.Type, outputFormat.Type())

	disposition, err := GetWriteDisposition(conf)
	require.NoError(t, err)
	assert.Equal(t, types.WriteAppend, disposition)

	cleanup, err := GetCleanupTemporaryData(conf)
	require.NoError(t, err)
	assert.True(t, cleanup)

	_, err = GetOutputPath(conf)
	assert.ErrorIs(t, err, ErrMalformedConfiguration)
	assert.ErrorIs(t, SetOutputPath(conf, ""), ErrIllegalArgument)
	require.NoError(t, SetOutputPath(conf, "/tmp/staging"))
	path, err := GetOutputPath(conf)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/staging", path)

	conf.Set(OutputFormatClassKey, "unknown")
	_, err = GetOutputFormat(conf)
	assert.ErrorIs(t, err, ErrMalformedConfiguration)

	assert.ErrorIs(t, SetWriteDisposition(conf, "APPEND"), ErrIllegalArgument)
}

func TestGetLoadOptions(t *testing.T) {
	conf := validConf()
	require.NoError(t, SetWriteDisposition(conf, types.WriteEmpty))
	require.NoError(t, SetOutputPath(conf, "/staging"))

	options, err := GetLoadOptions(conf)
	require.NoError(t, err)
	assert.Equal(t, &LoadOptions{
		Table:                *testTableRef,
		Schema:               testTableSchema(),
		FileFormat:           testFileFormat,
		OutputFormat:         jsonl.Type,
		WriteDisposition:     types.WriteEmpty,
		CleanupTemporaryData: true,
		OutputPath:           "/staging",
	}, options)

	conf.Unset(TableIDKey)
	_, err = GetLoadOptions(conf)
	assert.ErrorIs(t, err, ErrMalformedConfiguration)
}
