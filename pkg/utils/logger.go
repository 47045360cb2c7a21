package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger for debug messages
var (
	isVerbose = false
	logOut    io.Writer
	logFile   *os.File
)

// Log prints debug messages to the log file if verbose mode is enabled
func Log(text string, args ...interface{}) {
	if isVerbose && logOut != nil {
		fmt.Fprintf(logOut, time.Now().Format("15:04:05")+" "+text+"\n", args...)
	}
}

// Warn logs a recoverable problem, e.g. a corrupt store entry that was replaced by defaults
func Warn(text string, args ...interface{}) {
	Log("WARN "+text, args...)
}

// InitLogger initializes the logging system
func InitLogger(verbose bool) {
	isVerbose = verbose

	if verbose {
		// One log file per day
		now := time.Now()
		logFileName := fmt.Sprintf("%s/ips_%s.log", os.TempDir(), now.Format("2006-01-02"))

		var err error
		logFile, err = os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("Error creating log file: %v\n", err)
			return
		}
		logOut = logFile

		Log("Verbose logging enabled")
	}
}

// SetOutput redirects verbose logging to w. Passing nil disables it again.
func SetOutput(w io.Writer) {
	isVerbose = w != nil
	logOut = w
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logOut = nil
}
