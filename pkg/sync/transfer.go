package sync

import (
	goSync "sync"

	log "github.com/sirupsen/logrus"

	"github.com/ClasicRando/sftp-sync/pkg/remote"
)

type transferResult struct {
	pair TransferPair
	err  error
}

// transfer copies every pair in the work list across a pool of workers.
// Pairs are independent of each other, so no ordering is guaranteed. A
// failed copy is reported through the Reporter and doesn't stop the
// remaining pairs; there are no retries. The returned counts are only used
// for the run summary.
func (s *Syncer) transfer(workList []TransferPair) (copied, failed int) {
	if len(workList) == 0 {
		return 0, 0
	}

	numWorkers := s.workers
	if len(workList) < numWorkers {
		numWorkers = len(workList)
	}

	var workerWaitGroup goSync.WaitGroup
	jobs := make(chan TransferPair, numWorkers*2)
	results := make(chan transferResult, numWorkers)
	for i := 0; i < numWorkers; i++ {
		workerWaitGroup.Add(1)
		go func() {
			defer workerWaitGroup.Done()
			src := s.checkoutRemote()
			defer s.checkinRemote(src)
			for pair := range jobs {
				results <- transferResult{pair: pair, err: s.copyFile(src, pair)}
			}
		}()
	}

	// Feed the workers.
	go func() {
		for _, pair := range workList {
			jobs <- pair
		}
		close(jobs)

		workerWaitGroup.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			s.reporter.CopyError(res.pair.RemotePath, res.pair.LocalPath, res.err)
			failed++
			continue
		}
		copied++
	}
	return copied, failed
}

// checkoutRemote returns the remote handle a worker should read through.
// When a channel pool is configured, each worker gets its own channel so
// that concurrent reads don't interleave on a single protocol session.
func (s *Syncer) checkoutRemote() remote.FS {
	if s.pool == nil {
		return s.remote
	}

	conn, err := s.pool.Get()
	if err != nil {
		log.WithError(err).Warn("Failed to open a dedicated remote channel. " +
			"Falling back to the shared session for this worker.")
		return s.remote
	}
	return conn
}

func (s *Syncer) checkinRemote(conn remote.FS) {
	if s.pool != nil && conn != s.remote {
		s.pool.Put(conn)
	}
}
