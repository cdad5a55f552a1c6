package sync

import (
	"os"

	"github.com/spf13/afero"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
)

// StalenessPolicy decides whether the remote file mirrored at localPath
// needs to be copied again. remoteSize is the byte length the remote listing
// reported for the file.
//
// Returned errors propagate up through the traversal and abort the run, so
// policies should only fail when the local mirror itself is unreadable.
type StalenessPolicy func(fs afero.Fs, localPath string, remoteSize int64) (bool, error)

// SizeDiffers is the default policy: a file is stale when it doesn't exist
// locally, or when its local byte length differs from the remote one. Equal
// lengths are treated as equal content, so a remote edit that keeps the size
// unchanged is not picked up.
func SizeDiffers(fs afero.Fs, localPath string, remoteSize int64) (bool, error) {
	info, err := fs.Stat(localPath)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.WithContext(err, "stat local file")
	}
	return info.Size() != remoteSize, nil
}
