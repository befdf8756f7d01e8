// Package remoteconfig gives access to the locally configured remotes.
//
// Remotes are described by one YAML file per remote under a configuration
// directory. Verification flags left unset in a descriptor inherit the
// store defaults, so policy is resolved consistently wherever a remote is
// looked up.
package remoteconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/repofind/pkg/model"
	"github.com/oneconcern/repofind/pkg/remoteconfig/status"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

const descriptorExt = ".yaml"

// RemoteDescriptor is the on-disk description of a configured remote.
//
// Verification flags are pointers to distinguish unset from false: unset
// flags inherit the store defaults.
type RemoteDescriptor struct {
	URL              string             `json:"url" yaml:"url"`
	GPGVerify        *bool              `json:"gpg-verify,omitempty" yaml:"gpg-verify,omitempty"`
	GPGVerifySummary *bool              `json:"gpg-verify-summary,omitempty" yaml:"gpg-verify-summary,omitempty"`
	Refs             model.RefChecksums `json:"refs,omitempty" yaml:"refs,omitempty"`
	_                struct{}
}

// Store implementations know how to enumerate configured remotes, advertise
// their ref lists and resolve their full inherited configuration.
type Store interface {
	String() string
	ListRemotes(context.Context) ([]string, error)
	ListRefs(context.Context, string) (model.RefChecksums, error)
	Remote(context.Context, string) (model.Remote, error)
	SaveRemote(context.Context, string, RemoteDescriptor) error
}

// New creates a remote configuration store backed by a file system
func New(opts ...Option) Store {
	s := &localConfig{
		fs:  nil,
		dir: filepath.Join(".repofind", "remotes"),
		defaults: RemoteDescriptor{
			GPGVerify:        boolPtr(true),
			GPGVerifySummary: boolPtr(true),
		},
	}
	for _, apply := range opts {
		apply(s)
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	return s
}

func boolPtr(b bool) *bool {
	return &b
}

type localConfig struct {
	fs           afero.Fs
	dir          string
	disableFsync bool
	overwrite    bool
	defaults     RemoteDescriptor
}

func (l *localConfig) String() string {
	return "remoteconfig@" + l.dir
}

func isValidRemoteName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/\\") && name == filepath.Base(name)
}

func (l *localConfig) ListRemotes(_ context.Context) ([]string, error) {
	entries, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			// no configuration directory means no remotes
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", status.ErrConfig, err)
	}
	remotes := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), descriptorExt) {
			continue
		}
		remotes = append(remotes, strings.TrimSuffix(entry.Name(), descriptorExt))
	}
	sort.Strings(remotes)
	return remotes, nil
}

func (l *localConfig) descriptor(name string) (RemoteDescriptor, error) {
	var desc RemoteDescriptor
	if !isValidRemoteName(name) {
		return desc, status.ErrInvalidName
	}
	buf, err := afero.ReadFile(l.fs, filepath.Join(l.dir, name+descriptorExt))
	if err != nil {
		if os.IsNotExist(err) {
			return desc, status.ErrNotFound
		}
		return desc, fmt.Errorf("%w: %v", status.ErrConfig, err)
	}
	if err := yaml.Unmarshal(buf, &desc); err != nil {
		return desc, fmt.Errorf("%w: %v", status.ErrConfig, err)
	}
	if desc.URL == "" {
		return desc, fmt.Errorf("%w: remote %q has no url", status.ErrConfig, name)
	}
	return desc, nil
}

func (l *localConfig) ListRefs(_ context.Context, name string) (model.RefChecksums, error) {
	desc, err := l.descriptor(name)
	if err != nil {
		return nil, err
	}
	return desc.Refs, nil
}

// Remote resolves the full configuration of a named remote, with unset
// verification flags inherited from the store defaults.
func (l *localConfig) Remote(_ context.Context, name string) (model.Remote, error) {
	desc, err := l.descriptor(name)
	if err != nil {
		return model.Remote{}, err
	}
	remote := model.Remote{
		Name:             name,
		URL:              desc.URL,
		GPGVerify:        *l.defaults.GPGVerify,
		GPGVerifySummary: *l.defaults.GPGVerifySummary,
	}
	if desc.GPGVerify != nil {
		remote.GPGVerify = *desc.GPGVerify
	}
	if desc.GPGVerifySummary != nil {
		remote.GPGVerifySummary = *desc.GPGVerifySummary
	}
	return remote, nil
}

func (l *localConfig) SaveRemote(_ context.Context, name string, desc RemoteDescriptor) error {
	if !isValidRemoteName(name) {
		return status.ErrInvalidName
	}
	if desc.URL == "" {
		return fmt.Errorf("%w: remote %q has no url", status.ErrConfig, name)
	}
	if len(desc.Refs) > 0 {
		if err := model.ValidateRefChecksums(desc.Refs); err != nil {
			return fmt.Errorf("%w: %v", status.ErrConfig, err)
		}
	}
	if !l.overwrite {
		if exists, _ := afero.Exists(l.fs, filepath.Join(l.dir, name+descriptorExt)); exists {
			return fmt.Errorf("%w: %q", status.ErrExists, name)
		}
	}
	if err := l.fs.MkdirAll(l.dir, 0700); err != nil {
		return fmt.Errorf("%w: %v", status.ErrConfig, err)
	}
	buf, err := yaml.Marshal(desc)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrConfig, err)
	}

	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !l.disableFsync {
		flag |= os.O_SYNC
	}
	target, err := l.fs.OpenFile(filepath.Join(l.dir, name+descriptorExt), flag, 0600)
	if err != nil {
		return fmt.Errorf("%w: %v", status.ErrConfig, err)
	}
	if _, err := target.Write(buf); err != nil {
		_ = target.Close()
		return fmt.Errorf("%w: %v", status.ErrConfig, err)
	}
	return target.Close()
}
