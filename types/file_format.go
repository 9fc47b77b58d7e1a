package types

import (
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/bigquery"
)

// FileFormat names the on-disk record serialization of the files staged for a load job.
type FileFormat string

const (
	NewlineDelimitedJSON FileFormat = "NEWLINE_DELIMITED_JSON"
	CSV                  FileFormat = "CSV"
	Avro                 FileFormat = "AVRO"
	Parquet              FileFormat = "PARQUET"
)

type fileFormatInfo struct {
	extension  string
	dataFormat bigquery.DataFormat
}

var fileFormats = map[FileFormat]fileFormatInfo{
	NewlineDelimitedJSON: {extension: ".json", dataFormat: bigquery.JSON},
	CSV:                  {extension: ".csv", dataFormat: bigquery.CSV},
	Avro:                 {extension: ".avro", dataFormat: bigquery.Avro},
	Parquet:              {extension: ".parquet", dataFormat: bigquery.Parquet},
}

// ParseFileFormat looks up a file format by its exact (case-sensitive) name.
func ParseFileFormat(name string) (FileFormat, error) {
	format := FileFormat(name)
	if _, found := fileFormats[format]; !found {
		return "", fmt.Errorf("unknown file format [%s], expected one of: %s", name, strings.Join(FileFormatNames(), ", "))
	}
	return format, nil
}

// FileFormatNames returns the names of all known file formats, sorted.
func FileFormatNames() []string {
	names := make([]string, 0, len(fileFormats))
	for format := range fileFormats {
		names = append(names, string(format))
	}
	sort.Strings(names)
	return names
}

func (f FileFormat) Name() string {
	return string(f)
}

func (f FileFormat) IsValid() bool {
	_, found := fileFormats[f]
	return found
}

// Extension returns the file suffix, including the leading dot.
func (f FileFormat) Extension() string {
	return fileFormats[f].extension
}

// DataFormat is the source format a BigQuery load job expects for files of this format.
func (f FileFormat) DataFormat() bigquery.DataFormat {
	return fileFormats[f].dataFormat
}
