// Package mount implements a finder scanning removable volumes for a
// well-known on-volume repository layout.
//
// A suitable volume advertises repositories under <mount root>/.ostree/repos:
// one subdirectory (or symlink to a directory) per ref. Symlinks are
// dereferenced so several refs pointing at the same repository coalesce
// into a single result, and a ref resolving outside the volume's device is
// rejected.
package mount

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oneconcern/repofind/pkg/finder"
	"github.com/oneconcern/repofind/pkg/finder/status"
	"github.com/oneconcern/repofind/pkg/model"
	"go.uber.org/zap"
)

// Priority assigned to results from this finder. Chosen to sort before
// config-based results.
const Priority = 50

// repos directory relative to a volume's mount root
var reposSubdir = filepath.Join(".ostree", "repos")

var _ finder.Finder = &mountFinder{}

// New creates a finder scanning mounted removable volumes.
//
// The volume enumeration capability is frozen at construction time; it
// defaults to the system mount table.
func New(opts ...Option) finder.Finder {
	f := &mountFinder{
		l: zap.NewNop(),
	}
	for _, apply := range opts {
		apply(f)
	}
	if f.lister == nil {
		f.lister = SystemLister()
	}
	return f
}

type mountFinder struct {
	lister VolumeLister
	l      *zap.Logger
}

func (m *mountFinder) String() string {
	return "mount"
}

// Resolve scans every mounted removable volume for repositories serving
// refs. An unsuitable or unreadable volume is skipped, never fatal:
// cancellation is the only hard failure.
func (m *mountFinder) Resolve(ctx context.Context, refs []string) (model.Results, error) {
	volumes, err := m.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make(model.Results, 0, len(volumes))
	for _, volume := range volumes {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, m.resolveVolume(ctx, volume, refs)...)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveVolume reports the repositories on one volume serving some of the
// requested refs, grouped by canonical repository location.
func (m *mountFinder) resolveVolume(ctx context.Context, volume Volume, refs []string) model.Results {
	l := m.l.With(zap.String("volume", volume.Name))

	if volume.Device == "" || volume.MountRoot == "" {
		l.Debug("ignoring volume with no drive or no mount")
		return nil
	}
	if !volume.Removable {
		l.Debug("ignoring volume: drive is not removable")
		return nil
	}

	reposDir := filepath.Join(volume.MountRoot, reposSubdir)
	if fi, err := os.Stat(reposDir); err != nil || !fi.IsDir() {
		l.Debug("ignoring volume: no repos directory", zap.String("path", reposDir), zap.Error(err))
		return nil
	}

	// the device of the mount root bounds every resolved repository below
	rootDevice, err := statDevice(volume.MountRoot)
	if err != nil {
		l.Debug("ignoring volume: querying mount root failed", zap.Error(err))
		return nil
	}

	repoToRefs := make(map[string]model.RefChecksums)
	for _, ref := range refs {
		if ctx.Err() != nil {
			return nil
		}

		repoPath := filepath.Join(reposDir, ref)
		if rel, rerr := filepath.Rel(reposDir, repoPath); rerr != nil || strings.HasPrefix(rel, "..") {
			l.Debug("ignoring ref escaping the repos directory", zap.String("ref", ref))
			continue
		}

		fi, serr := os.Stat(repoPath) // follows symlinks
		if serr != nil {
			l.Debug("ignoring ref: querying info failed", zap.String("ref", ref), zap.Error(serr))
			continue
		}
		if !fi.IsDir() {
			l.Debug("ignoring ref: not a directory", zap.String("ref", ref))
			continue
		}

		// do not allow a ref symlink to point outside the mounted volume
		device, derr := statDevice(repoPath)
		if derr == nil && device != rootDevice {
			derr = status.ErrCrossDevice
		}
		if derr != nil {
			l.Debug("ignoring ref on a different file system than the mount",
				zap.String("ref", ref),
				zap.Error(derr))
			continue
		}

		canonical, cerr := canonicalPath(repoPath)
		if cerr != nil {
			l.Debug("ignoring ref: cannot canonicalize", zap.String("ref", ref), zap.Error(cerr))
			continue
		}

		// key by canonicalized location so multiple ref symlinks to the
		// same repository coalesce into one result
		repoURI := "file://" + canonical
		l.Debug("resolved ref", zap.String("ref", ref), zap.String("uri", repoURI))

		supported, ok := repoToRefs[repoURI]
		if !ok {
			supported = make(model.RefChecksums)
			repoToRefs[repoURI] = supported
		}
		supported[ref] = "" // checksum unknown until the repository is read
	}

	uris := make([]string, 0, len(repoToRefs))
	for uri := range repoToRefs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)

	results := make(model.Results, 0, len(uris))
	for _, uri := range uris {
		remote := model.Remote{
			Name: uri,
			URL:  uri,
			// local volumes are untrusted media: verification is forced on
			GPGVerify:        true,
			GPGVerifySummary: true,
		}
		// freshness is left unknown: reading the on-volume summary here
		// would negate the benefit of a cheap local scan
		result, rerr := model.NewResult(remote, Priority, repoToRefs[uri], time.Time{})
		if rerr != nil {
			l.Debug("ignoring repository", zap.String("uri", uri), zap.Error(rerr))
			continue
		}
		results = append(results, result)
	}
	return results
}

// canonicalPath resolves symlinks and returns an absolute path
func canonicalPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}
