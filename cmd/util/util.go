package util

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
)

// HandleFatalError prints the user-facing message for err and exits with a
// non-zero status. It should only be called from command entrypoints.
func HandleFatalError(err error) {
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(1)
}

// HandlePanic recovers from panics so that we can log them before exiting.
// It should be deferred at the top of every goroutine spawned by a command.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log.WithField("stack", string(debug.Stack())).Errorf("Panicked: %v", r)
	os.Exit(1)
}
