package destination

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/datazip-inc/bqoutput/constants"
	"github.com/datazip-inc/bqoutput/types"
	"github.com/datazip-inc/bqoutput/utils/logger"
	"github.com/google/uuid"
)

// LocalWriter stages records into a single part file:
// output_path/part-<uuid>.<ext>
type LocalWriter struct {
	path    string
	file    *os.File
	writer  RecordWriter
	records int64
	closed  bool
}

// PartFileName returns a unique file name carrying the extension of format.
func PartFileName(format types.FileFormat) string {
	return constants.PartFilePrefix + uuid.NewString() + format.Extension()
}

func NewLocalWriter(outputPath string, format OutputFormat, schema *types.TableSchema) (*LocalWriter, error) {
	if err := os.MkdirAll(outputPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output path[%s]: %s", outputPath, err)
	}

	path := filepath.Join(outputPath, PartFileName(format.FileFormat()))
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create part file: %s", err)
	}

	writer, err := format.NewRecordWriter(file, schema)
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to initialize %s writer: %s", format.Type(), err)
	}

	logger.Debugf("staging %s records in %s", format.FileFormat(), path)
	return &LocalWriter{
		path:   path,
		file:   file,
		writer: writer,
	}, nil
}

func (l *LocalWriter) Write(record types.Record) error {
	if l.closed {
		return fmt.Errorf("write on closed part file %s", l.path)
	}
	if err := l.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write record %d: %s", l.records+1, err)
	}
	l.records++
	return nil
}

func (l *LocalWriter) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	if err := l.writer.Close(); err != nil {
		l.file.Close()
		return fmt.Errorf("failed to flush part file %s: %s", l.path, err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close part file %s: %s", l.path, err)
	}
	logger.Infof("written %d records to %s", l.records, l.path)
	return nil
}

// Abort closes the part file and removes it, dropping every record written so far.
func (l *LocalWriter) Abort() {
	if !l.closed {
		l.closed = true
		l.writer.Close()
		l.file.Close()
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		logger.Warnf("failed to remove part file %s: %s", l.path, err)
		return
	}
	logger.Warnf("discarded part file %s", l.path)
}

func (l *LocalWriter) Path() string {
	return l.path
}

func (l *LocalWriter) Records() int64 {
	return l.records
}
