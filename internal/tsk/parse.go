package tsk

import "strings"

// FileEntry is one row of fls machine-readable (-m) output. All fields are
// kept verbatim as strings; no normalization of sizes or timestamps is done.
type FileEntry struct {
	Type  string `json:"type"`
	Inode string `json:"inode"`
	Name  string `json:"name"`
	Mode  string `json:"mode"`
	UID   string `json:"uid"`
	GID   string `json:"gid"`
	Size  string `json:"size"`
	Atime string `json:"atime"`
	Mtime string `json:"mtime"`
	Ctime string `json:"ctime"`
}

// PartitionEntry is one row of mmls output. Sector counts stay strings.
type PartitionEntry struct {
	Slot        string `json:"slot"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Length      string `json:"length"`
	Description string `json:"description"`
}

// DeletedSet buckets deleted-file listing entries by recoverability.
// An entry containing the literal "(realloc)" marker has had its metadata
// slot reused by a newer file and is unlikely to be recoverable.
type DeletedSet struct {
	Files       []string
	Recoverable []string
	Realloc     []string
}

// ParseFileListing converts fls -m output into FileEntry records. Blank
// lines and #-prefixed comment lines are skipped silently; data lines with
// fewer than 10 pipe-delimited fields are dropped and counted in skipped.
// The trailing ctime field is optional and defaults to "".
func ParseFileListing(output string) (files []FileEntry, skipped int) {
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 10 {
			skipped++
			continue
		}
		entry := FileEntry{
			Type:  parts[1],
			Inode: parts[2],
			Name:  parts[3],
			Mode:  parts[4],
			UID:   parts[5],
			GID:   parts[6],
			Size:  parts[7],
			Atime: parts[8],
			Mtime: parts[9],
		}
		if len(parts) > 10 {
			entry.Ctime = parts[10]
		}
		files = append(files, entry)
	}
	return files, skipped
}

// ParsePartitions converts mmls output into PartitionEntry records. Lines
// whose first byte is not an ASCII digit, and lines starting with '0' (the
// table header and meta rows), are skipped silently; digit-leading lines
// with fewer than 6 whitespace tokens are dropped and counted in skipped.
func ParsePartitions(output string) (partitions []PartitionEntry, skipped int) {
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		if line[0] == '0' || line[0] < '0' || line[0] > '9' {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 6 {
			skipped++
			continue
		}
		partitions = append(partitions, PartitionEntry{
			Slot:        parts[0],
			Start:       parts[1],
			End:         parts[2],
			Length:      parts[3],
			Description: strings.Join(parts[4:], " "),
		})
	}
	return partitions, skipped
}

// ClassifyDeleted splits a deleted-file listing into entries and buckets
// each one as recoverable or realloc-warned. Classification is total:
// len(Recoverable) + len(Realloc) == len(Files) for any input.
func ClassifyDeleted(output string) DeletedSet {
	var set DeletedSet
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		set.Files = append(set.Files, line)
		if strings.Contains(line, "(realloc)") {
			set.Realloc = append(set.Realloc, line)
		} else {
			set.Recoverable = append(set.Recoverable, line)
		}
	}
	return set
}

// EntropyWarning scans tool stderr for the high-entropy advisory and returns
// a report warning when present. Advisory only, never a failure.
func EntropyWarning(stderr string) (string, bool) {
	if strings.Contains(strings.ToLower(stderr), "high entropy") {
		return "High entropy files detected - may indicate encryption or compression", true
	}
	return "", false
}

// CountTimelineEntries counts the non-empty lines of timeline output.
// Empty output counts zero entries.
func CountTimelineEntries(output string) int {
	n := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
