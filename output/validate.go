package output

import (
	"strconv"

	"github.com/datazip-inc/bqoutput/destination"
	"github.com/datazip-inc/bqoutput/jobconf"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/datazip-inc/bqoutput/utils"
)

// ValidateConfiguration checks that conf holds a complete and readable output
// configuration and returns the first problem found. It does not modify conf.
func ValidateConfiguration(conf jobconf.Configuration) error {
	values := make(map[string]string, len(requiredKeys))
	for _, key := range requiredKeys {
		value, err := getMandatory(conf, key)
		if err != nil {
			return err
		}
		values[key] = value
	}

	if err := checkFileFormat(values[FileFormatKey]); err != nil {
		return err
	}
	if err := checkOutputFormat(values[OutputFormatClassKey]); err != nil {
		return err
	}
	if err := checkTableSchema(values[TableSchemaKey]); err != nil {
		return err
	}
	if err := checkWriteDisposition(conf); err != nil {
		return err
	}
	return checkCleanupTemporaryData(conf)
}

// Diagnose runs the same checks as ValidateConfiguration but reports every failure.
func Diagnose(conf jobconf.Configuration) error {
	checks := make([]func() error, 0, len(requiredKeys)+5)
	for _, key := range requiredKeys {
		key := key
		checks = append(checks, func() error {
			_, err := getMandatory(conf, key)
			return err
		})
	}

	// value checks only run for keys that are present, absence is reported above
	present := func(key string, check func(string) error) func() error {
		return func() error {
			if value, found := getOptional(conf, key); found {
				return check(value)
			}
			return nil
		}
	}
	checks = append(checks,
		present(FileFormatKey, checkFileFormat),
		present(OutputFormatClassKey, checkOutputFormat),
		present(TableSchemaKey, checkTableSchema),
		func() error { return checkWriteDisposition(conf) },
		func() error { return checkCleanupTemporaryData(conf) },
	)
	return utils.ErrExecSequential(checks...)
}

func checkFileFormat(value string) error {
	if _, err := types.ParseFileFormat(value); err != nil {
		return illegalArgument("%s: %s", FileFormatKey, err)
	}
	return nil
}

func checkOutputFormat(value string) error {
	if !destination.IsRegistered(value) {
		return malformedConfiguration("%s: [%s] is not a registered output format", OutputFormatClassKey, value)
	}
	return nil
}

func checkTableSchema(value string) error {
	if _, err := types.ParseTableSchema(value); err != nil {
		return malformedConfiguration("%s: failed to parse table schema: %s", TableSchemaKey, err)
	}
	return nil
}

func checkWriteDisposition(conf jobconf.Configuration) error {
	value, found := getOptional(conf, WriteDispositionKey)
	if !found {
		return nil
	}
	if _, err := types.ParseWriteDisposition(value); err != nil {
		return illegalArgument("%s: %s", WriteDispositionKey, err)
	}
	return nil
}

func checkCleanupTemporaryData(conf jobconf.Configuration) error {
	value, found := getOptional(conf, CleanupTemporaryDataKey)
	if !found {
		return nil
	}
	if _, err := strconv.ParseBool(value); err != nil {
		return malformedConfiguration("%s: [%s] is not a boolean", CleanupTemporaryDataKey, value)
	}
	return nil
}
