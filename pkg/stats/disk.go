package stats

import "golang.org/x/sys/unix"

// diskFreePercent returns the free percentage of the filesystem holding
// path, as seen by an unprivileged process (available blocks, not
// reserved ones).
func diskFreePercent(path string) (float64, bool) {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return 0, false
	}

	total := fs.Blocks * uint64(fs.Bsize)
	if total == 0 {
		return 0, false
	}

	avail := fs.Bavail * uint64(fs.Bsize)
	return 100 * float64(avail) / float64(total), true
}
