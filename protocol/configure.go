package protocol

import (
	"fmt"
	"os"

	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/jobconf"
	"github.com/datazip-inc/bqoutput/output"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/datazip-inc/bqoutput/utils"
	"github.com/datazip-inc/bqoutput/utils/logger"
	"github.com/spf13/cobra"
)

type configureOptions struct {
	Table            string `json:"table" validate:"required,qualified_table"`
	FileFormat       string `json:"format" validate:"required,file_format"`
	OutputFormat     string `json:"output-format" validate:"required"`
	SchemaPath       string `json:"schema" validate:"required,file"`
	WriteDisposition string `json:"write-disposition" validate:"omitempty,oneof=WRITE_APPEND WRITE_TRUNCATE WRITE_EMPTY"`
	OutputPath       string `json:"output-path"`
}

func configureCmd() *cobra.Command {
	opts := &configureOptions{}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "write BigQuery output settings into a job configuration",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if confPath == "" {
				return fmt.Errorf("--conf not passed")
			}
			return utils.Validate(opts)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := jobconf.LoadOrNew(confPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(opts.SchemaPath)
			if err != nil {
				return fmt.Errorf("failed to read schema file: %s", err)
			}
			schema, err := types.ParseTableSchema(string(data))
			if err != nil {
				return fmt.Errorf("failed to parse schema file[%s]: %s", opts.SchemaPath, err)
			}

			outputFormat, err := destination.NewOutputFormat(opts.OutputFormat)
			if err != nil {
				return err
			}

			if err := output.ConfigureWithQualifiedName(conf, opts.Table, types.FileFormat(opts.FileFormat), outputFormat, schema); err != nil {
				return err
			}
			if opts.WriteDisposition != "" {
				if err := output.SetWriteDisposition(conf, types.WriteDisposition(opts.WriteDisposition)); err != nil {
					return err
				}
			}
			if opts.OutputPath != "" {
				if err := output.SetOutputPath(conf, opts.OutputPath); err != nil {
					return err
				}
			}

			if err := conf.WriteFile(confPath); err != nil {
				return err
			}
			logger.Infof("configured output table %s in %s", opts.Table, confPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "", "", "(Required) Destination table as projectId:datasetId.tableId")
	cmd.Flags().StringVarP(&opts.FileFormat, "format", "", string(types.NewlineDelimitedJSON), "(Optional) File format of the staged files")
	cmd.Flags().StringVarP(&opts.OutputFormat, "output-format", "", "", "(Required) Registered output format name")
	cmd.Flags().StringVarP(&opts.SchemaPath, "schema", "", "", "(Required) Path to the table schema JSON file")
	cmd.Flags().StringVarP(&opts.WriteDisposition, "write-disposition", "", "", "(Optional) WRITE_APPEND, WRITE_TRUNCATE or WRITE_EMPTY")
	cmd.Flags().StringVarP(&opts.OutputPath, "output-path", "", "", "(Optional) Directory the output format stages files in")
	return cmd
}
