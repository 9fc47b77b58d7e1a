package protocol

import (
	"github.com/datazip-inc/bqoutput/output"
	"github.com/datazip-inc/bqoutput/utils/logger"
	"github.com/spf13/cobra"
)

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "print the load options derived from a job configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := loadConf()
			if err != nil {
				return err
			}

			options, err := output.GetLoadOptions(conf)
			if err != nil {
				return err
			}

			logger.Infof("destination table %s, source format %s", options.Table, options.FileFormat.DataFormat())
			logger.Info(options)
			if !noSave {
				return logger.FileLogger(options, "load_options", ".json")
			}
			return nil
		},
	}
}
