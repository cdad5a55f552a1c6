// Package remote defines the boundary between the sync engine and the
// machine on the other end of the file-transfer session. The engine only
// ever sees the FS interface, so it can be driven by an SFTP connection in
// production and by an in-memory fake in tests.
package remote

import (
	"io"
)

// SizeUnknown is the Size reported for entries whose byte length couldn't
// be determined from the directory listing.
const SizeUnknown = -1

// Entry describes a single item in a remote directory listing.
type Entry struct {
	// Name is the entry's basename. An empty name means the server
	// returned something we couldn't extract a name from.
	Name string

	// Dir is true when the entry is a directory.
	Dir bool

	// Size is the entry's byte length, or SizeUnknown when the listing
	// didn't report one. It's meaningless for directories.
	Size int64
}

// FS is a read-only view of the remote filesystem. Implementations are
// supplied already authenticated; the sync engine never opens or closes
// the underlying session.
type FS interface {
	// ReadDir lists the immediate entries of the given directory.
	ReadDir(dir string) ([]Entry, error)

	// Open opens the given remote file for reading.
	Open(path string) (io.ReadCloser, error)
}
