// Package validation checks pipeline inputs before a stage starts, so
// a missing or mistyped file fails fast with a clear error instead of
// surfacing as a parse failure halfway through.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "peoplecli/internal/errors"
)

// FileValidator provides input and output checks shared by the stage
// binaries.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateFile checks that a file exists, is not a directory, and is
// readable.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return apperrors.NewNotFoundError(fmt.Sprintf("file %s does not exist", path), err)
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		return apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateWorkbook checks that a path names a readable xlsx workbook.
// Excel lock files ("~$...") are rejected so a workbook left open in
// Excel does not get picked up by mistake.
func (v *FileValidator) ValidateWorkbook(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		return apperrors.NewValidationError(
			fmt.Sprintf("file %s is not an Excel workbook (extension: %s)", path, ext), nil)
	}
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return apperrors.NewValidationError(
			fmt.Sprintf("file %s is an Excel lock file", path), nil)
	}
	return nil
}

// ValidateCSVInputs checks every listed CSV input. The returned error
// names all missing files, not just the first one.
func (v *FileValidator) ValidateCSVInputs(paths ...string) error {
	var missing []string
	for _, path := range paths {
		if err := v.ValidateFile(path); err != nil {
			missing = append(missing, path)
			continue
		}
		if strings.ToLower(filepath.Ext(path)) != ".csv" {
			return apperrors.NewValidationError(
				fmt.Sprintf("file %s is not a CSV file", path), nil)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("missing input files: %s (run the earlier pipeline stages first)",
				strings.Join(missing, ", ")), nil)
	}
	return nil
}

// ValidateOutputDirectory ensures the directory exists and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError(
			fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		return apperrors.NewStorageError(
			fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)
	return nil
}
