/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package destination

import (
	"io"

	"github.com/datazip-inc/bqoutput/types"
)

// OutputFormat serializes records into files that a BigQuery load job can ingest.
type OutputFormat interface {
	// Type is the registered name of the format, stored in the job configuration
	Type() string
	FileFormat() types.FileFormat
	// NewRecordWriter starts a new file on w. Formats that need column
	// information fail when schema is nil.
	NewRecordWriter(w io.Writer, schema *types.TableSchema) (RecordWriter, error)
}

type RecordWriter interface {
	Write(record types.Record) error
	// Close flushes buffered data; it does not close the underlying writer
	Close() error
}
