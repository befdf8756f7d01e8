package mount

import (
	"golang.org/x/sys/unix"
)

// statDevice returns the ID of the device hosting the file at path,
// following symlinks. Used to check that a resolved repository stays on
// the same device as its mount root.
//
// Declared as a variable so tests can simulate cross-device layouts.
var statDevice = func(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Dev), nil
}
