package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oneconcern/repofind/pkg/finder"
	cfgfinder "github.com/oneconcern/repofind/pkg/finder/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configOnlyFinders restricts discovery to configured remotes, so tests do
// not depend on the volumes mounted on the machine running them.
func configOnlyFinders(t *testing.T) {
	saved := buildFinders
	buildFinders = func() []finder.Finder {
		return []finder.Finder{
			cfgfinder.New(remotesStore(), cfgfinder.Logger(logger)),
		}
	}
	t.Cleanup(func() {
		buildFinders = saved
	})
}

func TestRemoteAddAndList(t *testing.T) {
	output := setupCLITests(t)
	cacheDir := t.TempDir()

	runCmd(t, []string{"remote", "add", "exampleos", "https://repo.example.com/ostree",
		"--cache-dir", cacheDir,
		"--ref", "exampleos/x86_64/standard",
		"--disable-fsync",
	}, "add first remote", false)
	runCmd(t, []string{"remote", "add", "appsos", "https://apps.example.com/ostree",
		"--cache-dir", cacheDir,
		"--ref", "appsos/x86_64/firefox/stable",
		"--ref", "appsos/x86_64/gimp/stable",
		"--no-gpg-verify",
		"--disable-fsync",
	}, "add second remote", false)

	_, err := os.Stat(filepath.Join(cacheDir, "exampleos.yaml"))
	require.NoError(t, err, "remote descriptor written")

	runCmd(t, []string{"remote", "add", "exampleos", "https://elsewhere.example.com/ostree",
		"--cache-dir", cacheDir,
		"--disable-fsync",
	}, "adding an existing remote without --force", true)
	runCmd(t, []string{"remote", "add", "exampleos", "https://elsewhere.example.com/ostree",
		"--cache-dir", cacheDir,
		"--disable-fsync",
		"--force",
	}, "replace an existing remote with --force", false)

	output.Reset()
	runCmd(t, []string{"remote", "list", "--cache-dir", cacheDir}, "list remotes", false)
	assert.Equal(t, "appsos\nexampleos\n", output.String())
}

func TestFindConfiguredRemote(t *testing.T) {
	output := setupCLITests(t)
	configOnlyFinders(t)
	cacheDir := t.TempDir()

	runCmd(t, []string{"remote", "add", "exampleos", "https://repo.example.com/ostree",
		"--cache-dir", cacheDir,
		"--ref", "exampleos/x86_64/standard",
		"--ref", "exampleos/x86_64/devel",
		"--disable-fsync",
	}, "add remote", false)

	output.Reset()
	runCmd(t, []string{"find", "exampleos/x86_64/standard", "exampleos/x86_64/devel",
		"--cache-dir", cacheDir,
	}, "find advertised refs", false)

	expected := `Result 0: https://repo.example.com/ostree
 - Priority: 100
 - Summary last modified: unknown
 - Refs:
  - exampleos/x86_64/devel
  - exampleos/x86_64/standard
`
	assert.Equal(t, expected, output.String())
}

func TestFindNoResults(t *testing.T) {
	output := setupCLITests(t)
	configOnlyFinders(t)
	cacheDir := t.TempDir()

	runCmd(t, []string{"find", "exampleos/x86_64/standard",
		"--cache-dir", cacheDir,
	}, "find with no configured remotes", false)
	assert.Equal(t, "No results.\n", output.String())
}

func TestFindInvalidRef(t *testing.T) {
	_ = setupCLITests(t)
	configOnlyFinders(t)
	cacheDir := t.TempDir()

	runCmd(t, []string{"find", "bad\x01ref",
		"--cache-dir", cacheDir,
	}, "find with a non-printable ref", true)
}

func TestRemoteAddInvalidChecksum(t *testing.T) {
	_ = setupCLITests(t)
	cacheDir := t.TempDir()

	runCmd(t, []string{"remote", "add", "exampleos", "https://repo.example.com/ostree",
		"--cache-dir", cacheDir,
		"--ref", "exampleos/x86_64/standard=NOTAHEXSUM",
		"--disable-fsync",
	}, "add remote with malformed checksum", true)
}
