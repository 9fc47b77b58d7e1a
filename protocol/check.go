package protocol

import (
	"github.com/datazip-inc/bqoutput/output"
	"github.com/datazip-inc/bqoutput/utils/logger"
	"github.com/spf13/cobra"
)

type Status string

const (
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

// StatusMessage is logged as the outcome of a check.
type StatusMessage struct {
	Type    string `json:"type"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

func checkCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "validate the BigQuery output settings of a job configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			err := func() error {
				conf, err := loadConf()
				if err != nil {
					return err
				}
				if all {
					return output.Diagnose(conf)
				}
				return output.ValidateConfiguration(conf)
			}()

			// log success or failure
			message := StatusMessage{
				Type:   "CONFIGURATION_STATUS",
				Status: StatusSucceeded,
			}
			if err != nil {
				message.Status = StatusFailed
				message.Message = err.Error()
			}
			logger.Info(message)
			return err
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "", false, "(Optional) Report every problem instead of stopping at the first")
	return cmd
}
