package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	apperrors "peoplecli/internal/errors"
)

// CSVWriter provides typed CSV export for pipeline outputs. Records
// are marshaled through their csv struct tags, so every stage writes
// the same column set for the same record type.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

// WriteRecords writes a slice of tagged record structs to filePath.
// The slice order is preserved: callers sort before writing so that
// identical inputs produce byte-identical files.
func (w *CSVWriter) WriteRecords(filePath string, records interface{}, options WriteOptions) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError(
			fmt.Sprintf("failed to create directory %s", dir), err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return apperrors.NewStorageError(
			fmt.Sprintf("failed to create file %s", filePath), err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return apperrors.NewStorageError(
			fmt.Sprintf("failed to marshal records to %s", filePath), err)
	}

	w.logger.Info("Wrote CSV file",
		slog.String("path", filePath))

	return nil
}

// ReadRecords reads a CSV written by WriteRecords back into the given
// slice pointer. A leading UTF-8 BOM is tolerated.
func ReadRecords(filePath string, out interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("failed to read file %s", filePath), err)
	}

	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	if err := gocsv.UnmarshalBytes(data, out); err != nil {
		return apperrors.NewParsingError(
			fmt.Sprintf("failed to parse CSV %s", filePath), err)
	}
	return nil
}
