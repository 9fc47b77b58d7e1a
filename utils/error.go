package utils

import (
	"github.com/hashicorp/go-multierror"
)

// ErrExecSequential runs every function in order and accumulates all failures,
// so a single call reports every problem instead of the first one.
func ErrExecSequential(functions ...func() error) error {
	var multErr *multierror.Error
	for _, one := range functions {
		if err := one(); err != nil {
			multErr = multierror.Append(multErr, err)
		}
	}
	return multErr.ErrorOrNil()
}
