package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/datazip-inc/bqoutput/constants"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger zerolog.Logger

func init() {
	logger = zerolog.New(consoleWriter(os.Stdout)).With().Timestamp().Logger()
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

// Init configures the global logger from viper. Logs always go to stdout; unless
// NO_SAVE is set they are also written as JSON to a rotated file in CONFIG_FOLDER.
func Init() {
	level, err := zerolog.ParseLevel(viper.GetString(constants.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	writers := []io.Writer{consoleWriter(os.Stdout)}
	if folder := viper.GetString(constants.ConfigFolder); folder != "" && !viper.GetBool(constants.NoSave) {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(folder, "logs", constants.LogFileName),
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
}

// SetOutput redirects logs to out, used in tests.
func SetOutput(out io.Writer) {
	logger = logger.Output(out)
}

// message renders a single non-string argument as JSON so structured values stay readable.
func message(v ...any) string {
	if len(v) == 1 {
		switch val := v[0].(type) {
		case string:
			return val
		case error:
			return val.Error()
		case fmt.Stringer:
			return val.String()
		default:
			if data, err := json.Marshal(val); err == nil {
				return string(data)
			}
		}
	}
	return fmt.Sprint(v...)
}

func Debug(v ...any) {
	logger.Debug().Msg(message(v...))
}

func Debugf(format string, v ...any) {
	logger.Debug().Msgf(format, v...)
}

func Info(v ...any) {
	logger.Info().Msg(message(v...))
}

func Infof(format string, v ...any) {
	logger.Info().Msgf(format, v...)
}

func Warn(v ...any) {
	logger.Warn().Msg(message(v...))
}

func Warnf(format string, v ...any) {
	logger.Warn().Msgf(format, v...)
}

func Error(v ...any) {
	logger.Error().Msg(message(v...))
}

func Errorf(format string, v ...any) {
	logger.Error().Msgf(format, v...)
}

func Fatal(v ...any) {
	logger.Fatal().Msg(message(v...))
}

// FileLogger writes content as indented JSON to CONFIG_FOLDER/<fileName><fileExtension>.
func FileLogger(content any, fileName, fileExtension string) error {
	folder := viper.GetString(constants.ConfigFolder)
	if folder == "" {
		return fmt.Errorf("%s is not set", constants.ConfigFolder)
	}
	return FileLoggerWithPath(content, filepath.Join(folder, fileName+fileExtension))
}

func FileLoggerWithPath(content any, path string) error {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal content for %s: %s", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %s", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %s", path, err)
	}
	Debugf("written %s", path)
	return nil
}
