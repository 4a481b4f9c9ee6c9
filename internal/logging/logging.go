package logging

import "go.uber.org/zap"

// New builds the process logger. Verbose switches to the development
// encoder with debug level enabled.
func New(verbose bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}
