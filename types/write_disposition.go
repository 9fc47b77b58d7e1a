package types

import (
	"fmt"

	"cloud.google.com/go/bigquery"
)

type WriteDisposition string

const (
	WriteAppend   WriteDisposition = "WRITE_APPEND"
	WriteTruncate WriteDisposition = "WRITE_TRUNCATE"
	WriteEmpty    WriteDisposition = "WRITE_EMPTY"

	DefaultWriteDisposition = WriteAppend
)

func ParseWriteDisposition(name string) (WriteDisposition, error) {
	switch disposition := WriteDisposition(name); disposition {
	case WriteAppend, WriteTruncate, WriteEmpty:
		return disposition, nil
	default:
		return "", fmt.Errorf("unknown write disposition [%s], expected one of: %s, %s, %s", name, WriteAppend, WriteTruncate, WriteEmpty)
	}
}

func (w WriteDisposition) ToBigQuery() bigquery.TableWriteDisposition {
	switch w {
	case WriteTruncate:
		return bigquery.WriteTruncate
	case WriteEmpty:
		return bigquery.WriteEmpty
	default:
		return bigquery.WriteAppend
	}
}
