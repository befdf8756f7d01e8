package mount

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// Volume describes one mounted storage volume, as reported by a
// VolumeLister.
type Volume struct {
	// Name is a human-readable name for logs
	Name string

	// Device is the backing device node; empty when the volume has no
	// associated physical drive
	Device string

	// MountRoot is the active mount point; empty when the volume is not
	// mounted
	MountRoot string

	// Removable tells whether the backing drive is removable
	Removable bool

	_ struct{}
}

// VolumeLister implementations enumerate the currently mounted volumes
type VolumeLister interface {
	List(ctx context.Context) ([]Volume, error)
}

// SystemLister enumerates mounted volumes from the OS mount table
func SystemLister() VolumeLister {
	return &systemLister{sysBlock: "/sys/block"}
}

type systemLister struct {
	sysBlock string
}

func (s *systemLister) List(ctx context.Context) ([]Volume, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	volumes := make([]Volume, 0, len(partitions))
	for _, partition := range partitions {
		device := partition.Device
		if !strings.HasPrefix(device, "/dev/") {
			// virtual file systems have no physical drive
			device = ""
		}
		volumes = append(volumes, Volume{
			Name:      filepath.Base(partition.Device),
			Device:    device,
			MountRoot: partition.Mountpoint,
			Removable: device != "" && s.isRemovable(device),
		})
	}
	return volumes, nil
}

// isRemovable consults the sysfs removable flag of the disk backing a
// partition device node
func (s *systemLister) isRemovable(device string) bool {
	buf, err := os.ReadFile(filepath.Join(s.sysBlock, baseDisk(filepath.Base(device)), "removable"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(buf)) == "1"
}

// baseDisk maps a partition name to its disk name (sda1 -> sda,
// nvme0n1p2 -> nvme0n1)
func baseDisk(partition string) string {
	name := strings.TrimRight(partition, "0123456789")
	if strings.HasPrefix(partition, "nvme") || strings.HasPrefix(partition, "mmcblk") {
		name = strings.TrimSuffix(name, "p")
	}
	return name
}
