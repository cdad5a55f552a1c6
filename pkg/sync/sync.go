package sync

import (
	"runtime"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
	"github.com/ClasicRando/sftp-sync/pkg/remote"
)

// TransferPair identifies one file that must be copied from the remote tree
// into the local mirror. Pairs are immutable once created and consumed
// exactly once by the transfer phase.
type TransferPair struct {
	RemotePath string
	LocalPath  string
}

// Config holds the parameters for one sync run.
type Config struct {
	// Remote is the already-authenticated remote filesystem handle. It's
	// lent to the Syncer for the duration of the run and never closed by it.
	Remote remote.FS

	// Pool optionally supplies independent remote channels to the transfer
	// workers. Without it, all workers read through Remote.
	Pool *remote.Pool

	// LocalDirectory is the root of the local mirror. It must already exist.
	LocalDirectory string

	// RemoteDirectory is the root of the remote tree to mirror.
	RemoteDirectory string

	// Exclude lists basenames that are skipped wherever they occur.
	Exclude []string

	// Workers caps the number of concurrent transfers. Defaults to the
	// number of CPUs.
	Workers int

	// Reporter receives progress events. Defaults to a NopReporter.
	Reporter Reporter

	// Policy decides which files need to be copied. Defaults to SizeDiffers.
	Policy StalenessPolicy
}

// Syncer mirrors a remote directory tree onto the local filesystem.
type Syncer struct {
	remote    remote.FS
	pool      *remote.Pool
	exclude   ExclusionSet
	localDir  string
	remoteDir string
	workers   int
	reporter  Reporter
	policy    StalenessPolicy
	clock     clockwork.Clock
}

// newClock will be overridden in mock tests.
var newClock = clockwork.NewRealClock

// New creates a Syncer for the given run parameters.
func New(config Config) *Syncer {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	reporter := config.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	policy := config.Policy
	if policy == nil {
		policy = SizeDiffers
	}

	return &Syncer{
		remote:    config.Remote,
		pool:      config.Pool,
		exclude:   NewExclusionSet(config.Exclude),
		localDir:  config.LocalDirectory,
		remoteDir: config.RemoteDirectory,
		workers:   workers,
		reporter:  reporter,
		policy:    policy,
		clock:     newClock(),
	}
}

// Run performs one sync: it walks the remote tree to build the work list,
// then copies every stale file. It returns nil when every directory was
// mirrored and every stale file was attempted, even if some individual
// copies failed (those are reported through the Reporter). A non-nil error
// means the run aborted before completing the traversal.
func (s *Syncer) Run() error {
	dirExists, err := afero.DirExists(fs, s.localDir)
	if err != nil {
		return errors.WithContext(err, "check local directory")
	}
	if !dirExists {
		return errors.FileNotFound{Path: s.localDir}
	}

	start := s.clock.Now()
	log.WithFields(log.Fields{
		"local":  s.localDir,
		"remote": s.remoteDir,
	}).Info("Looking for files that need to be added or replaced")

	workList, err := s.findPaths(s.remoteDir, s.localDir)
	if err != nil {
		return err
	}
	log.WithField("files", len(workList)).Info("Finished scanning the remote directory")

	copied, failed := s.transfer(workList)
	log.WithFields(log.Fields{
		"copied":  copied,
		"failed":  failed,
		"elapsed": s.clock.Since(start),
	}).Info("Sync complete")
	return nil
}
