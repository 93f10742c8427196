package testutil

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log output is suppressed unless tests run with -v, so failures in quiet
// runs don't bury the test summary under trace logs.
func init() {
	logrus.SetLevel(logrus.TraceLevel)

	if !isVerboseTestRun() {
		logrus.StandardLogger().Out = io.Discard
	}
}

func isVerboseTestRun() bool {
	for _, arg := range os.Args {
		if arg == "-test.v=true" {
			return true
		}
	}
	return false
}

// DisableLogging silences the standard logger and returns a func that
// restores the previous output.
func DisableLogging() (reset func()) {
	originalLogOutput := logrus.StandardLogger().Out
	logrus.StandardLogger().Out = io.Discard
	return func() {
		logrus.StandardLogger().Out = originalLogOutput
	}
}
