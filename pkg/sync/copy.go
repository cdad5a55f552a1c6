package sync

import (
	"io"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
	"github.com/ClasicRando/sftp-sync/pkg/remote"
)

// copyBufferSize is the chunk size for streaming remote files to disk.
const copyBufferSize = 128 * 1024

// copyFile streams one remote file into its local destination through the
// given remote handle. The local file is created or truncated up front, and
// each chunk is fully written before the next read. On failure the partially
// written local file is left in place; the next run will pick it up again
// since its size won't match the remote one.
func (s *Syncer) copyFile(src remote.FS, pair TransferPair) error {
	s.reporter.Copying(pair.RemotePath, pair.LocalPath)

	remoteFile, err := src.Open(pair.RemotePath)
	if err != nil {
		return errors.WithContext(err, "open remote file")
	}
	defer remoteFile.Close()

	localFile, err := fs.Create(pair.LocalPath)
	if err != nil {
		return errors.WithContext(err, "create local file")
	}
	defer localFile.Close()

	buffer := make([]byte, copyBufferSize)
	for {
		bytesRead, err := remoteFile.Read(buffer)
		if bytesRead > 0 {
			if _, err := localFile.Write(buffer[:bytesRead]); err != nil {
				return errors.WithContext(err, "write local file")
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.WithContext(err, "read remote file")
		}
		if bytesRead == 0 {
			break
		}
	}
	return nil
}
