package gen

import (
	"os"
	"path/filepath"

	"dhallgen/internal/errors"
	"dhallgen/internal/logger"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates missing directories, including those inside file names.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return errors.Wrapf(err, "creating directory for %s", file.Filename)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return errors.Wrapf(err, "writing file %s", file.Filename)
		}

		logger.Logger.Infow("wrote file", logger.FieldFile, outputPath)
	}

	return nil
}
