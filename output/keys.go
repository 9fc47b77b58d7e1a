package output

// Job configuration keys for BigQuery output.
const (
	ProjectIDKey         = "mapred.bq.output.project.id"
	DatasetIDKey         = "mapred.bq.output.dataset.id"
	TableIDKey           = "mapred.bq.output.table.id"
	FileFormatKey        = "mapred.bq.output.file.format"
	OutputFormatClassKey = "mapred.bq.output.format.class"
	TableSchemaKey       = "mapred.bq.output.table.schema"

	WriteDispositionKey     = "mapred.bq.output.table.writedisposition"
	CleanupTemporaryDataKey = "mapred.bq.output.gcs.cleanup"
	// OutputPathKey is where output formats stage their files before the load
	OutputPathKey = "mapreduce.output.fileoutputformat.outputdir"

	DefaultCleanupTemporaryData = true
)

// requiredKeys in the order ValidateConfiguration checks them
var requiredKeys = []string{
	ProjectIDKey,
	DatasetIDKey,
	TableIDKey,
	FileFormatKey,
	OutputFormatClassKey,
	TableSchemaKey,
}
