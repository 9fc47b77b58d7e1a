package output

import (
	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/jobconf"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/datazip-inc/bqoutput/utils/logger"
)

// Configure writes the output table, file format, output format and schema into
// conf. Every argument is checked before the first key is written, so a failed
// call leaves conf untouched.
func Configure(conf jobconf.Configuration, projectID, datasetID, tableID string, fileFormat types.FileFormat,
	outputFormat destination.OutputFormat, schema *types.TableSchema) error {
	switch {
	case projectID == "":
		return illegalArgument("project id is required")
	case datasetID == "":
		return illegalArgument("dataset id is required")
	case tableID == "":
		return illegalArgument("table id is required")
	case !fileFormat.IsValid():
		return illegalArgument("unknown file format [%s]", fileFormat)
	case outputFormat == nil:
		return illegalArgument("output format is required")
	case !destination.IsRegistered(outputFormat.Type()):
		return illegalArgument("output format [%s] is not registered", outputFormat.Type())
	case schema == nil:
		return illegalArgument("table schema is required")
	}

	if err := schema.Validate(); err != nil {
		return illegalArgument("invalid table schema: %s", err)
	}

	schemaJSON, err := schema.ToJSON()
	if err != nil {
		return illegalArgument("failed to serialize table schema: %s", err)
	}

	conf.Set(ProjectIDKey, projectID)
	conf.Set(DatasetIDKey, datasetID)
	conf.Set(TableIDKey, tableID)
	conf.Set(FileFormatKey, fileFormat.Name())
	conf.Set(OutputFormatClassKey, outputFormat.Type())
	conf.Set(TableSchemaKey, schemaJSON)

	logger.Debugf("configured output to %s as %s using %s", types.NewTableReference(projectID, datasetID, tableID), fileFormat, outputFormat.Type())
	return nil
}

// ConfigureWithQualifiedName is Configure with the table given as "projectId:datasetId.tableId".
func ConfigureWithQualifiedName(conf jobconf.Configuration, qualifiedTableName string, fileFormat types.FileFormat,
	outputFormat destination.OutputFormat, schema *types.TableSchema) error {
	ref, err := types.ParseQualifiedTableName(qualifiedTableName)
	if err != nil {
		return illegalArgument("%s", err)
	}
	return Configure(conf, ref.ProjectID, ref.DatasetID, ref.TableID, fileFormat, outputFormat, schema)
}

// SetWriteDisposition controls what the load does when the table already holds data.
func SetWriteDisposition(conf jobconf.Configuration, disposition types.WriteDisposition) error {
	if _, err := types.ParseWriteDisposition(string(disposition)); err != nil {
		return illegalArgument("%s", err)
	}
	conf.Set(WriteDispositionKey, string(disposition))
	return nil
}

// SetCleanupTemporaryData controls whether staged files are deleted once loaded.
func SetCleanupTemporaryData(conf jobconf.Configuration, cleanup bool) {
	if cleanup {
		conf.Set(CleanupTemporaryDataKey, "true")
	} else {
		conf.Set(CleanupTemporaryDataKey, "false")
	}
}

// SetOutputPath sets the directory output formats stage their files in.
func SetOutputPath(conf jobconf.Configuration, path string) error {
	if path == "" {
		return illegalArgument("output path is required")
	}
	conf.Set(OutputPathKey, path)
	return nil
}
