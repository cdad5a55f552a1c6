package sync

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ClasicRando/sftp-sync/cmd/util"
)

// A sync run keeps rewriting a single progress line, so the blinking cursor
// is hidden for the duration of the run. The cursor state is process-wide
// terminal state, which is why restoring it also has to happen on SIGINT.
const (
	hideCursorSeq = "\x1b[?25l"
	showCursorSeq = "\x1b[?25h"
)

func hideCursor() {
	fmt.Print(hideCursorSeq)
}

func showCursor() {
	fmt.Print(showCursorSeq)
}

// watchInterrupts restores the cursor before exiting when the user kills the
// sync mid-run. An in-flight run is not stopped cleanly; transfers are
// simply abandoned, and the next run picks up any partial files.
func watchInterrupts() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer util.HandlePanic()
		<-sigChan
		fmt.Println()
		showCursor()
		os.Exit(1)
	}()
}
