package constants

// viper keys for process wide settings
const (
	ConfigFolder = "CONFIG_FOLDER"
	LogLevel     = "LOG_LEVEL"
	NoSave       = "NO_SAVE"
	EnvPrefix    = "BQOUTPUT"
)

const (
	DefaultLogLevel = "info"
	LogFileName     = "bqoutput.log"
	PartFilePrefix  = "part-"
)
