// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/pairfactory/config"
)

// newLogger writes to stderr at the display level and, when a log
// directory is configured, to a rotating JSON file at the log level.
func newLogger(cfg *config.Config, name string, quiet bool) logging.Logger {
	var consoleWriter io.WriteCloser = os.Stderr
	if quiet {
		consoleWriter = discardWriteCloser{io.Discard}
	}
	consoleCore := logging.NewWrappedCore(cfg.LogDisplayLevel, consoleWriter, logging.Colors.ConsoleEncoder())
	consoleCore.WriterDisabled = quiet
	cores := []logging.WrappedCore{consoleCore}

	if len(cfg.LogDir) > 0 {
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, name+".log"),
			MaxSize:    cfg.LogMaxSize, // megabytes
			MaxAge:     cfg.LogMaxAge,  // days
			MaxBackups: cfg.LogMaxFiles,
		}
		cores = append(cores, logging.NewWrappedCore(cfg.LogLevel, rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger("", cores...)
}

type discardWriteCloser struct {
	io.Writer
}

func (discardWriteCloser) Close() error {
	return nil
}
