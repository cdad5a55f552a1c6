package sync

import (
	"github.com/sirupsen/logrus"
)

// SkipReason explains why a remote entry was passed over during traversal.
type SkipReason string

const (
	// SkipExcluded means the entry's name is in the exclusion set.
	SkipExcluded SkipReason = "excluded"

	// SkipBadName means a name couldn't be extracted from the listing entry.
	SkipBadName SkipReason = "unreadable name"

	// SkipNoSize means the listing didn't report the file's size, so the
	// staleness check can't be made.
	SkipNoSize SkipReason = "unreported size"
)

// Reporter receives progress events from a sync run. Events are purely
// observational: the run's outcome never depends on what a Reporter does
// with them.
type Reporter interface {
	// Scanning is called when a remote file is about to be checked against
	// the local mirror.
	Scanning(remotePath string)

	// Skip is called when a remote entry is passed over. Skips are never
	// fatal; traversal continues with the next entry.
	Skip(reason SkipReason, path string)

	// Copying is called when a file transfer starts.
	Copying(remotePath, localPath string)

	// CopyError is called when a single file transfer fails. The failure
	// is isolated to that file and is not retried.
	CopyError(remotePath, localPath string, err error)
}

// LogReporter writes sync events to a logrus logger.
type LogReporter struct {
	Log *logrus.Logger
}

func (r LogReporter) Scanning(remotePath string) {
	r.Log.WithField("path", remotePath).Debug("Checking remote file")
}

func (r LogReporter) Skip(reason SkipReason, path string) {
	r.Log.WithFields(logrus.Fields{
		"path":   path,
		"reason": reason,
	}).Info("Skipped remote entry")
}

func (r LogReporter) Copying(remotePath, localPath string) {
	r.Log.WithFields(logrus.Fields{
		"remote": remotePath,
		"local":  localPath,
	}).Info("Copying file")
}

func (r LogReporter) CopyError(remotePath, localPath string, err error) {
	r.Log.WithError(err).WithFields(logrus.Fields{
		"remote": remotePath,
		"local":  localPath,
	}).Error("Failed to copy file")
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Scanning(string)                  {}
func (NopReporter) Skip(SkipReason, string)          {}
func (NopReporter) Copying(string, string)           {}
func (NopReporter) CopyError(string, string, error)  {}
