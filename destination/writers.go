package destination

import (
	"fmt"
	"sort"
)

type NewFunc func() OutputFormat

// RegisteredOutputFormats is the closed set of output formats a job configuration
// may name. Formats add themselves from init, so binaries blank import the ones they ship.
var RegisteredOutputFormats = map[string]NewFunc{}

// NewOutputFormat instantiates the output format registered under name.
func NewOutputFormat(name string) (OutputFormat, error) {
	newFunc, found := RegisteredOutputFormats[name]
	if !found {
		return nil, fmt.Errorf("invalid output format has been passed [%s]", name)
	}
	return newFunc(), nil
}

func IsRegistered(name string) bool {
	_, found := RegisteredOutputFormats[name]
	return found
}

// RegisteredNames returns the registered output format names, sorted.
func RegisteredNames() []string {
	names := make([]string, 0, len(RegisteredOutputFormats))
	for name := range RegisteredOutputFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
