package markdown

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultOutputFile is the report name used when none is configured.
const DefaultOutputFile = "directory_consolidated.md"

// NormalizeOutputPath applies the default name and makes sure the path ends in ".md".
func NormalizeOutputPath(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return DefaultOutputFile
	}
	if !strings.HasSuffix(strings.ToLower(output), ".md") {
		output += ".md"
	}
	return output
}

// WriteFile writes the rendered document to outputPath, creating parent directories.
func WriteFile(outputPath, document string, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Writing report", zap.String("outputFile", outputPath))

	if err := ensureDirectory(filepath.Dir(outputPath), logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(closeErr))
			if err == nil {
				err = fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}
	}()

	writer := bufio.NewWriter(outFile)
	if _, err := writer.WriteString(document); err != nil {
		logger.Error("Failed to write report", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Debug("Successfully wrote report", zap.String("outputFile", outputPath), zap.Int("bytes", len(document)))
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
