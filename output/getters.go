package output

import (
	"strconv"

	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/jobconf"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/datazip-inc/bqoutput/utils/logger"
)

// LoadOptions gathers everything a BigQuery load of the staged files needs.
type LoadOptions struct {
	Table                types.TableReference   `json:"table"`
	Schema               *types.TableSchema     `json:"schema,omitempty"`
	FileFormat           types.FileFormat       `json:"file_format"`
	OutputFormat         string                 `json:"output_format"`
	WriteDisposition     types.WriteDisposition `json:"write_disposition"`
	CleanupTemporaryData bool                   `json:"cleanup_temporary_data"`
	OutputPath           string                 `json:"output_path,omitempty"`
}

// empty values count as absent
func getOptional(conf jobconf.Configuration, key string) (string, bool) {
	value, found := conf.Get(key)
	if !found || value == "" {
		return "", false
	}
	return value, true
}

func getMandatory(conf jobconf.Configuration, key string) (string, error) {
	value, found := getOptional(conf, key)
	if !found {
		return "", malformedConfiguration("missing required key %s", key)
	}
	return value, nil
}

// GetProjectID returns the output project id, falling back to the job wide
// jobconf.ProjectIDKey when the output one is not set.
func GetProjectID(conf jobconf.Configuration) (string, error) {
	if projectID, found := getOptional(conf, ProjectIDKey); found {
		return projectID, nil
	}
	projectID, found := getOptional(conf, jobconf.ProjectIDKey)
	if !found {
		return "", malformedConfiguration("missing required key %s or %s", ProjectIDKey, jobconf.ProjectIDKey)
	}
	logger.Debugf("%s not set, using project id %s from %s", ProjectIDKey, projectID, jobconf.ProjectIDKey)
	return projectID, nil
}

// GetTableReference reads the destination table. Dataset and table ids are required.
func GetTableReference(conf jobconf.Configuration) (*types.TableReference, error) {
	datasetID, err := getMandatory(conf, DatasetIDKey)
	if err != nil {
		return nil, err
	}
	tableID, err := getMandatory(conf, TableIDKey)
	if err != nil {
		return nil, err
	}
	projectID, err := GetProjectID(conf)
	if err != nil {
		return nil, err
	}
	return types.NewTableReference(projectID, datasetID, tableID), nil
}

// GetTableSchema returns nil without an error when no schema is configured.
func GetTableSchema(conf jobconf.Configuration) (*types.TableSchema, error) {
	value, found := getOptional(conf, TableSchemaKey)
	if !found {
		return nil, nil
	}
	schema, err := types.ParseTableSchema(value)
	if err != nil {
		return nil, malformedConfiguration("%s: failed to parse table schema: %s", TableSchemaKey, err)
	}
	return schema, nil
}

// GetFileFormat reads the required file format of the staged files.
func GetFileFormat(conf jobconf.Configuration) (types.FileFormat, error) {
	value, err := getMandatory(conf, FileFormatKey)
	if err != nil {
		return "", err
	}
	format, err := types.ParseFileFormat(value)
	if err != nil {
		return "", illegalArgument("%s: %s", FileFormatKey, err)
	}
	return format, nil
}

// GetOutputFormat instantiates the configured output format from the registry.
func GetOutputFormat(conf jobconf.Configuration) (destination.OutputFormat, error) {
	value, err := getMandatory(conf, OutputFormatClassKey)
	if err != nil {
		return nil, err
	}
	format, err := destination.NewOutputFormat(value)
	if err != nil {
		return nil, malformedConfiguration("%s: %s", OutputFormatClassKey, err)
	}
	return format, nil
}

// GetWriteDisposition defaults to types.DefaultWriteDisposition when unset.
func GetWriteDisposition(conf jobconf.Configuration) (types.WriteDisposition, error) {
	value, found := getOptional(conf, WriteDispositionKey)
	if !found {
		return types.DefaultWriteDisposition, nil
	}
	disposition, err := types.ParseWriteDisposition(value)
	if err != nil {
		return "", illegalArgument("%s: %s", WriteDispositionKey, err)
	}
	return disposition, nil
}

// GetCleanupTemporaryData defaults to DefaultCleanupTemporaryData when unset.
func GetCleanupTemporaryData(conf jobconf.Configuration) (bool, error) {
	value, found := getOptional(conf, CleanupTemporaryDataKey)
	if !found {
		return DefaultCleanupTemporaryData, nil
	}
	cleanup, err := strconv.ParseBool(value)
	if err != nil {
		return false, malformedConfiguration("%s: [%s] is not a boolean", CleanupTemporaryDataKey, value)
	}
	return cleanup, nil
}

// GetOutputPath reads the required staging directory.
func GetOutputPath(conf jobconf.Configuration) (string, error) {
	return getMandatory(conf, OutputPathKey)
}

// GetLoadOptions validates conf and reads all output settings. The output path is
// optional here since only staging needs it.
func GetLoadOptions(conf jobconf.Configuration) (*LoadOptions, error) {
	if err := ValidateConfiguration(conf); err != nil {
		return nil, err
	}

	table, err := GetTableReference(conf)
	if err != nil {
		return nil, err
	}
	schema, err := GetTableSchema(conf)
	if err != nil {
		return nil, err
	}
	fileFormat, err := GetFileFormat(conf)
	if err != nil {
		return nil, err
	}
	disposition, err := GetWriteDisposition(conf)
	if err != nil {
		return nil, err
	}
	cleanup, err := GetCleanupTemporaryData(conf)
	if err != nil {
		return nil, err
	}
	outputFormat, _ := getOptional(conf, OutputFormatClassKey)
	outputPath, _ := getOptional(conf, OutputPathKey)

	return &LoadOptions{
		Table:                *table,
		Schema:               schema,
		FileFormat:           fileFormat,
		OutputFormat:         outputFormat,
		WriteDisposition:     disposition,
		CleanupTemporaryData: cleanup,
		OutputPath:           outputPath,
	}, nil
}
