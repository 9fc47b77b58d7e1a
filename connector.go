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
package bqoutput

import (
	"os"

	_ "github.com/datazip-inc/bqoutput/destination/avro"    // registering avro output format
	_ "github.com/datazip-inc/bqoutput/destination/csv"     // registering csv output format
	_ "github.com/datazip-inc/bqoutput/destination/jsonl"   // registering newline-delimited json output format
	_ "github.com/datazip-inc/bqoutput/destination/parquet" // registering parquet output format
	"github.com/datazip-inc/bqoutput/protocol"
	"github.com/datazip-inc/bqoutput/utils/logger"
	"github.com/datazip-inc/bqoutput/utils/safego"
)

// Run executes the bqoutput CLI with every bundled output format registered.
func Run() {
	defer safego.Recovery()

	// Execute the root command
	if err := protocol.CreateRootCommand().Execute(); err != nil {
		logger.Fatal(err)
	}

	os.Exit(0)
}
