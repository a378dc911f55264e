package archive

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// snapshotsDir is the top-level prefix every archive stores snapshots under.
const snapshotsDir = "snapshots"

// validateName rejects station ids and snapshot names that would escape
// their directory.
func validateName(kind, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid %s: %q", kind, name)
	}
	return nil
}

func validateKey(stationID, name string) error {
	if err := validateName("station id", stationID); err != nil {
		return err
	}
	return validateName("snapshot name", name)
}

// snapshotKey returns the slash-separated location of a snapshot.
func snapshotKey(stationID, name string) string {
	return path.Join(snapshotsDir, stationID, name)
}

// newestFirst sorts snapshot names in place. Names start with a UTC
// timestamp, so reverse lexical order is reverse chronological.
func newestFirst(names []string) []string {
	slices.Sort(names)
	slices.Reverse(names)
	return names
}
