package sync

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
)

// findPaths recursively mirrors the remote directory structure under
// localDir and returns the transfer pairs for every file in the subtree that
// the staleness policy considers out of date.
//
// Each call returns a freshly built list for its own subtree; the recursion
// concatenates child results rather than sharing an accumulator. Failures to
// create a local directory or to list a remote one are fatal and propagate
// up unchanged, aborting the whole run. Per-entry problems (unreadable
// names, unreported sizes) are reported and skipped.
func (s *Syncer) findPaths(remoteDir, localDir string) ([]TransferPair, error) {
	if err := fs.MkdirAll(localDir, 0755); err != nil {
		return nil, errors.WithContext(err,
			fmt.Sprintf("create local directory %q", localDir))
	}

	entries, err := s.remote.ReadDir(remoteDir)
	if err != nil {
		return nil, errors.WithContext(err,
			fmt.Sprintf("list remote directory %q", remoteDir))
	}

	var workList []TransferPair
	for _, entry := range entries {
		if entry.Name == "" || strings.ContainsRune(entry.Name, '/') {
			s.reporter.Skip(SkipBadName, remoteDir)
			continue
		}

		if s.exclude.Contains(entry.Name) {
			s.reporter.Skip(SkipExcluded, path.Join(remoteDir, entry.Name))
			continue
		}

		remotePath := path.Join(remoteDir, entry.Name)
		if entry.Dir {
			children, err := s.findPaths(remotePath, filepath.Join(localDir, entry.Name))
			if err != nil {
				return nil, err
			}
			workList = append(workList, children...)
			continue
		}

		s.reporter.Scanning(remotePath)

		if entry.Size < 0 {
			s.reporter.Skip(SkipNoSize, remotePath)
			continue
		}

		localPath := filepath.Join(localDir, entry.Name)
		stale, err := s.policy(fs, localPath, entry.Size)
		if err != nil {
			return nil, err
		}
		if stale {
			workList = append(workList, TransferPair{
				RemotePath: remotePath,
				LocalPath:  localPath,
			})
		}
	}
	return workList, nil
}
