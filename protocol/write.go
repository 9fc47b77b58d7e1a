package protocol

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/output"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// maximum size of a single input line
const maxRecordSize = 10 * 1024 * 1024

func writeCmd() *cobra.Command {
	var recordsPath string

	cmd := &cobra.Command{
		Use:   "write",
		Short: "stage newline-delimited JSON records with the configured output format",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if recordsPath == "" {
				return fmt.Errorf("--records not passed")
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := loadConf()
			if err != nil {
				return err
			}
			if err := output.ValidateConfiguration(conf); err != nil {
				return err
			}

			outputPath, err := output.GetOutputPath(conf)
			if err != nil {
				return err
			}
			outputFormat, err := output.GetOutputFormat(conf)
			if err != nil {
				return err
			}
			schema, err := output.GetTableSchema(conf)
			if err != nil {
				return err
			}

			input, err := os.Open(recordsPath)
			if err != nil {
				return fmt.Errorf("failed to open records file: %s", err)
			}
			defer input.Close()

			writer, err := destination.NewLocalWriter(outputPath, outputFormat, schema)
			if err != nil {
				return err
			}

			if err := stageRecords(input, writer); err != nil {
				// a partial part file must not be picked up by the load
				writer.Abort()
				return err
			}
			return writer.Close()
		},
	}

	cmd.Flags().StringVarP(&recordsPath, "records", "", "", "(Required) Path to a newline-delimited JSON file of records")
	return cmd
}

func stageRecords(input *os.File, writer *destination.LocalWriter) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		record := types.Record{}
		decoder := json.NewDecoder(bytes.NewReader(scanner.Bytes()))
		decoder.UseNumber()
		if err := decoder.Decode(&record); err != nil {
			return fmt.Errorf("failed to parse record on line %d: %s", line, err)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return scanner.Err()
}
