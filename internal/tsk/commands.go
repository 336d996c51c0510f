package tsk

import (
	"fmt"
	"strings"
)

// Tools holds the Sleuth Kit binary names (or full paths) used to build
// command lines. Zero values are filled from DefaultTools.
type Tools struct {
	Mmls   string
	Fsstat string
	Fls    string
	Istat  string
	Icat   string
}

// DefaultTools returns the standard Sleuth Kit binary names.
func DefaultTools() Tools {
	return Tools{
		Mmls:   "mmls",
		Fsstat: "fsstat",
		Fls:    "fls",
		Istat:  "istat",
		Icat:   "icat",
	}
}

// Commands builds the command lines for one disk image.
type Commands struct {
	tools Tools
	image string
}

// NewCommands creates a Commands for the given image path. Empty tool names
// fall back to the defaults.
func NewCommands(tools Tools, image string) Commands {
	def := DefaultTools()
	if tools.Mmls == "" {
		tools.Mmls = def.Mmls
	}
	if tools.Fsstat == "" {
		tools.Fsstat = def.Fsstat
	}
	if tools.Fls == "" {
		tools.Fls = def.Fls
	}
	if tools.Istat == "" {
		tools.Istat = def.Istat
	}
	if tools.Icat == "" {
		tools.Icat = def.Icat
	}
	return Commands{tools: tools, image: image}
}

// Partitions returns the partition-table listing command.
func (c Commands) Partitions() string {
	return fmt.Sprintf("%s %s", c.tools.Mmls, shellQuote(c.image))
}

// FilesystemInfo returns the filesystem statistics command.
func (c Commands) FilesystemInfo() string {
	return fmt.Sprintf("%s %s", c.tools.Fsstat, shellQuote(c.image))
}

// FileListing returns the recursive machine-readable file listing command.
func (c Commands) FileListing() string {
	return fmt.Sprintf("%s -r -m / %s", c.tools.Fls, shellQuote(c.image))
}

// DeletedFiles returns the recursive deleted-entry listing command.
func (c Commands) DeletedFiles() string {
	return fmt.Sprintf("%s -r -d %s", c.tools.Fls, shellQuote(c.image))
}

// Timeline returns the timeline body command. It is the same fls invocation
// as FileListing; the output is persisted verbatim rather than parsed.
func (c Commands) Timeline() string {
	return fmt.Sprintf("%s -r -m / %s", c.tools.Fls, shellQuote(c.image))
}

// InodeStat returns the per-inode metadata command.
func (c Commands) InodeStat(inode string) string {
	return fmt.Sprintf("%s %s %s", c.tools.Istat, shellQuote(c.image), shellQuote(inode))
}

// Recover returns the file-content extraction command. The body arrives on
// stdout; the caller is responsible for writing it to disk.
func (c Commands) Recover(inode string) string {
	return fmt.Sprintf("%s %s %s", c.tools.Icat, shellQuote(c.image), shellQuote(inode))
}

// shellQuote single-quotes s for use in an sh -c command line.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
