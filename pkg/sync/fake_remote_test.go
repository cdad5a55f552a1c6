package sync

import (
	"bytes"
	"fmt"
	"io"
	"path"
	goSync "sync"

	"github.com/ClasicRando/sftp-sync/pkg/remote"
)

// fakeRemote is an in-memory remote.FS built from a map of file paths to
// contents. Directory listings are derived from the paths, and errors can be
// injected per path to simulate listing and open failures.
type fakeRemote struct {
	listings map[string][]remote.Entry
	files    map[string]string
	listErr  map[string]error
	openErr  map[string]error
}

func newFakeRemote(files map[string]string) *fakeRemote {
	f := &fakeRemote{
		listings: map[string][]remote.Entry{},
		files:    map[string]string{},
		listErr:  map[string]error{},
		openErr:  map[string]error{},
	}
	for filePath, contents := range files {
		f.addFile(filePath, contents)
	}
	return f
}

func (f *fakeRemote) addFile(filePath, contents string) {
	f.files[filePath] = contents
	f.addEntry(path.Dir(filePath), remote.Entry{
		Name: path.Base(filePath),
		Size: int64(len(contents)),
	})
}

func (f *fakeRemote) addDir(dirPath string) {
	if _, ok := f.listings[dirPath]; !ok {
		f.listings[dirPath] = nil
	}
	parent := path.Dir(dirPath)
	if parent != dirPath {
		f.addEntry(parent, remote.Entry{Name: path.Base(dirPath), Dir: true})
	}
}

// addEntry appends an entry to dirPath's listing, creating the ancestor
// directories as needed. Duplicate names overwrite the earlier entry so that
// addFile can be called twice for the same path.
func (f *fakeRemote) addEntry(dirPath string, entry remote.Entry) {
	f.addDir(dirPath)
	for i, existing := range f.listings[dirPath] {
		if existing.Name == entry.Name {
			f.listings[dirPath][i] = entry
			return
		}
	}
	f.listings[dirPath] = append(f.listings[dirPath], entry)
}

func (f *fakeRemote) ReadDir(dir string) ([]remote.Entry, error) {
	if err := f.listErr[dir]; err != nil {
		return nil, err
	}
	entries, ok := f.listings[dir]
	if !ok {
		return nil, fmt.Errorf("no such directory: %s", dir)
	}
	return entries, nil
}

func (f *fakeRemote) Open(filePath string) (io.ReadCloser, error) {
	if err := f.openErr[filePath]; err != nil {
		return nil, err
	}
	contents, ok := f.files[filePath]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", filePath)
	}
	return io.NopCloser(bytes.NewReader([]byte(contents))), nil
}

// recordingReporter captures sync events for assertions. CopyError and
// Copying can be called from concurrent transfer workers, so access is
// locked.
type recordingReporter struct {
	mu       goSync.Mutex
	scanned  []string
	skips    map[SkipReason][]string
	copied   []TransferPair
	copyErrs map[string]error
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{
		skips:    map[SkipReason][]string{},
		copyErrs: map[string]error{},
	}
}

func (r *recordingReporter) Scanning(remotePath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scanned = append(r.scanned, remotePath)
}

func (r *recordingReporter) Skip(reason SkipReason, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skips[reason] = append(r.skips[reason], path)
}

func (r *recordingReporter) Copying(remotePath, localPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.copied = append(r.copied, TransferPair{RemotePath: remotePath, LocalPath: localPath})
}

func (r *recordingReporter) CopyError(remotePath, _ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.copyErrs[remotePath] = err
}

func (r *recordingReporter) copyCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.copied)
}
