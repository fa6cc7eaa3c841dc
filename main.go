package main

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"dirparse/cmd"
	"dirparse/pkg/logging"
	"dirparse/pkg/version"
)

func main() {
	if err := logging.Setup(false, version.AppName, version.Get().Version); err != nil {
		log.Printf("Failed to initialize logger: %v", err)
	}
	logger := logging.Logger

	err := cmd.Execute(logger)
	if err != nil {
		logger.Error("dirparse execution failed", zap.Error(err))
	}
	syncLogger(zap.L())
	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the logger when stderr can be synced. Terminals and pipes
// report "invalid argument" on fsync, which is not worth surfacing.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
