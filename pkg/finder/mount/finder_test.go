package mount

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oneconcern/repofind/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	volumes []Volume
	err     error
}

func (f *fakeLister) List(_ context.Context) ([]Volume, error) {
	return f.volumes, f.err
}

func removableVolume(name, root string) Volume {
	return Volume{
		Name:      name,
		Device:    "/dev/" + name,
		MountRoot: root,
		Removable: true,
	}
}

// mountRoot builds a volume layout with a real repository directory and
// two ref symlinks pointing at it.
func mountRoot(t *testing.T, refs ...string) string {
	root := t.TempDir()
	reposDir := filepath.Join(root, ".ostree", "repos")
	require.NoError(t, os.MkdirAll(reposDir, 0700))

	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(repo, 0700))
	for _, ref := range refs {
		require.NoError(t, os.Symlink(repo, filepath.Join(reposDir, ref)))
	}
	return root
}

func TestMountResolveCoalescesSymlinks(t *testing.T) {
	root := mountRoot(t, "a", "b")

	f := New(WithVolumeLister(&fakeLister{volumes: []Volume{removableVolume("sdb1", root)}}))
	results, err := f.Resolve(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, results, 1, "two symlinks to the same repository must coalesce into one result")

	result := results[0]
	assert.Equal(t, model.RefChecksums{"a": "", "b": ""}, result.Refs)
	assert.Equal(t, Priority, result.Priority)
	assert.True(t, result.SummaryLastModified.IsZero())
	assert.True(t, result.Remote.GPGVerify, "verification is forced on for volume results")
	assert.True(t, result.Remote.GPGVerifySummary)
	assert.True(t, strings.HasPrefix(result.Remote.Name, "file://"), "got %q", result.Remote.Name)
	assert.NotContains(t, result.Remote.Name, ".ostree", "the canonical repository path is reported, not the symlink")
}

func TestMountResolveSkipsUnsuitableVolumes(t *testing.T) {
	root := mountRoot(t, "a")

	f := New(WithVolumeLister(&fakeLister{volumes: []Volume{
		{Name: "fixed", Device: "/dev/sda1", MountRoot: root, Removable: false},
		{Name: "nodrive", Device: "", MountRoot: root, Removable: true},
		{Name: "nomount", Device: "/dev/sdc1", MountRoot: "", Removable: true},
		removableVolume("sdb1", root),
	}}))

	results, err := f.Resolve(context.Background(), []string{"a"})
	require.NoError(t, err, "unsuitable volumes are skipped, not fatal")
	require.Len(t, results, 1)
}

func TestMountResolveSkipsVolumesWithoutRepos(t *testing.T) {
	f := New(WithVolumeLister(&fakeLister{volumes: []Volume{
		removableVolume("sdb1", t.TempDir()),
	}}))

	results, err := f.Resolve(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMountResolveSkipsBadRefs(t *testing.T) {
	root := mountRoot(t, "a")
	reposDir := filepath.Join(root, ".ostree", "repos")
	require.NoError(t, os.WriteFile(filepath.Join(reposDir, "plainfile"), []byte("x"), 0600))

	f := New(WithVolumeLister(&fakeLister{volumes: []Volume{removableVolume("sdb1", root)}}))
	results, err := f.Resolve(context.Background(), []string{"a", "plainfile", "missing", "../escape"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, model.RefChecksums{"a": ""}, results[0].Refs,
		"non-directories, missing refs and escaping refs are skipped one by one")
}

func TestMountResolveRejectsCrossDevice(t *testing.T) {
	root := mountRoot(t, "a", "b")

	crossDevicePath := filepath.Join(root, ".ostree", "repos", "b")
	orig := statDevice
	statDevice = func(path string) (uint64, error) {
		if path == crossDevicePath {
			return 2, nil
		}
		return 1, nil
	}
	defer func() { statDevice = orig }()

	f := New(WithVolumeLister(&fakeLister{volumes: []Volume{removableVolume("sdb1", root)}}))
	results, err := f.Resolve(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, model.RefChecksums{"a": ""}, results[0].Refs,
		"a ref resolving to another device is excluded entirely")
}

func TestMountResolveCancelled(t *testing.T) {
	root := mountRoot(t, "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(WithVolumeLister(&fakeLister{volumes: []Volume{removableVolume("sdb1", root)}}))
	_, err := f.Resolve(ctx, []string{"a"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBaseDisk(t *testing.T) {
	for _, toPin := range []struct {
		partition string
		expected  string
	}{
		{partition: "sda1", expected: "sda"},
		{partition: "sdb", expected: "sdb"},
		{partition: "nvme0n1p2", expected: "nvme0n1"},
		{partition: "mmcblk0p1", expected: "mmcblk0"},
	} {
		testcase := toPin
		assert.Equal(t, testcase.expected, baseDisk(testcase.partition))
	}
}
