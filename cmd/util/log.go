package util

import (
	"log"
	"os"
)

// FlagVerbose enables the output of Verbosef.
var FlagVerbose = false

func init() {
	log.SetFlags(0)
}

func Warnf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func Verbosef(format string, v ...interface{}) {
	if FlagVerbose {
		log.Printf(format, v...)
	}
}

// Exitf logs a message and quits with the given exit code.
func Exitf(code int, format string, v ...interface{}) {
	log.Printf(format, v...)
	os.Exit(code)
}
