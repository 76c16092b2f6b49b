//go:build windows

package platform

import "os"

// shutdownSignals is only Ctrl+C; Windows does not reliably deliver SIGTERM to console apps
var shutdownSignals = []os.Signal{os.Interrupt}
