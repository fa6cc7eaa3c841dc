package consolidate

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Omission notes shown in place of file content.
const (
	readErrorNote = "could not read file: %v"
	binaryNote    = "binary file - %s"
	encodingNote  = "content skipped - unsupported encoding"
)

// LoadFile reads the file at absPath into a FileEntry. Failures never abort the
// run: unreadable and binary files come back with Omitted set instead of Content.
func LoadFile(absPath, relPath string, size int64, logger *zap.Logger) FileEntry {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := filepath.Base(absPath)
	entry := FileEntry{
		RelPath:   relPath,
		Name:      name,
		Extension: Extension(name),
		Size:      size,
	}

	logger.Debug("Reading file content", zap.String("filePath", absPath))
	data, err := os.ReadFile(absPath)
	if err != nil {
		logger.Warn("Failed to read file", zap.String("filePath", absPath), zap.Error(err))
		entry.Omitted = fmt.Sprintf(readErrorNote, err)
		return entry
	}

	if IsTextExtension(entry.Extension) {
		// Known text types skip sniffing but must still decode.
		if !utf8.Valid(data) {
			entry.Omitted = encodingNote
			logger.Debug("File is not valid UTF-8", zap.String("filePath", absPath))
			return entry
		}
	} else if IsBinary(data) {
		entry.Binary = true
		entry.Omitted = fmt.Sprintf(binaryNote, DetectMimeType(name, data))
		logger.Debug("File is binary", zap.String("filePath", absPath), zap.String("reason", entry.Omitted))
		return entry
	}

	entry.Content = string(data)
	logger.Debug("Successfully read file content",
		zap.String("filePath", absPath),
		zap.Int("contentSizeBytes", len(data)))
	return entry
}
