package types

// Record is a single row handed to an output format, keyed by column name.
type Record map[string]any
