package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

type logger struct {
	*log.Logger
}

func newLogger(verbose bool) *logger {
	l := log.New()
	l.Out = os.Stderr
	l.Formatter = &log.TextFormatter{DisableTimestamp: true}
	l.Level = log.WarnLevel
	if verbose {
		l.Level = log.InfoLevel
	}
	return &logger{l}
}

func (rcc *rootCmdConfig) Logger() *logger {
	if rcc.log == nil {
		rcc.log = newLogger(rcc.verbose)
	}
	return rcc.log
}

func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rcc.Logger().Infof(format, a...)
}
