//go:build !windows

package platform

import (
	"os"
	"syscall"
)

// shutdownSignals are SIGINT and SIGTERM on Unix
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
