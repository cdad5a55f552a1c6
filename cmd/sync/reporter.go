package sync

import (
	"fmt"

	"github.com/buger/goterm"
	log "github.com/sirupsen/logrus"

	"github.com/ClasicRando/sftp-sync/pkg/sync"
)

// terminalReporter renders the traversal's per-file checks as a single
// rewritten line, and promotes skips and transfer activity to full log
// lines. The progress line only ever comes from the sequential traversal,
// so there's no contention on the terminal beyond interleaved log lines.
type terminalReporter struct{}

func (terminalReporter) Scanning(remotePath string) {
	fmt.Printf("%sChecking %s", goterm.RESET_LINE, remotePath)
}

func (terminalReporter) Skip(reason sync.SkipReason, path string) {
	fmt.Print(goterm.RESET_LINE)
	log.WithFields(log.Fields{
		"path":   path,
		"reason": reason,
	}).Info("Skipped remote entry")
}

func (terminalReporter) Copying(remotePath, localPath string) {
	fmt.Print(goterm.RESET_LINE)
	log.WithFields(log.Fields{
		"remote": remotePath,
		"local":  localPath,
	}).Info("Copying file")
}

func (terminalReporter) CopyError(remotePath, localPath string, err error) {
	fmt.Print(goterm.RESET_LINE)
	log.WithError(err).WithFields(log.Fields{
		"remote": remotePath,
		"local":  localPath,
	}).Error("Failed to copy file")
}
