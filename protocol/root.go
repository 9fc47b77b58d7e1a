package protocol

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datazip-inc/bqoutput/constants"
	"github.com/datazip-inc/bqoutput/jobconf"
	"github.com/datazip-inc/bqoutput/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	confPath string
	logLevel string
	noSave   bool
)

// CreateRootCommand builds the bqoutput command tree. Output formats must already
// be registered, see cmd/bqoutput.
func CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bqoutput",
		Short: "configure and check BigQuery output settings of batch jobs",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetEnvPrefix(constants.EnvPrefix)
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()

			viper.SetDefault(constants.ConfigFolder, os.TempDir())
			viper.SetDefault(constants.LogLevel, constants.DefaultLogLevel)
			if confPath != "" {
				viper.Set(constants.ConfigFolder, filepath.Dir(confPath))
			}
			if cmd.Flags().Changed("log-level") {
				viper.Set(constants.LogLevel, logLevel)
			}
			viper.Set(constants.NoSave, noSave)

			// logger uses CONFIG_FOLDER
			logger.Init()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("'%s' is an invalid command. Use 'bqoutput --help' to display usage guide", args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&confPath, "conf", "", "", "(Required) Path to the job configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", constants.DefaultLogLevel, "(Optional) Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&noSave, "no-save", "", false, "(Optional) Flag to skip writing log and result files")

	rootCmd.AddCommand(configureCmd(), checkCmd(), describeCmd(), writeCmd())

	// Disable Cobra CLI's built-in usage and error handling
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return rootCmd
}

func loadConf() (*jobconf.JobConf, error) {
	if confPath == "" {
		return nil, fmt.Errorf("--conf not passed")
	}
	return jobconf.LoadFile(confPath)
}
