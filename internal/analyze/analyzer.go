// Package analyze drives the fixed analysis module sequence against one
// disk image: each module runs its external tool, parses the output, merges
// an artifact into the run's report, and persists its companion files. A
// failed module never stops the sequence.
package analyze

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lucasnoah/disktriage/internal/report"
	"github.com/lucasnoah/disktriage/internal/tsk"
)

// Module selector values accepted by Run.
const (
	ModuleFull       = "full"
	ModulePartitions = "partitions"
	ModuleFilesystem = "filesystem"
	ModuleFiles      = "files"
	ModuleDeleted    = "deleted"
	ModuleTimeline   = "timeline"
)

// Analyzer runs analysis modules for one image and accumulates the report.
type Analyzer struct {
	client   *tsk.Client
	cmds     tsk.Commands
	writer   *report.Writer
	rep      *report.Report
	htmlOpts report.HTMLOptions
	progress io.Writer
}

// New creates an Analyzer. progress may be nil to silence console output.
func New(client *tsk.Client, cmds tsk.Commands, writer *report.Writer, rep *report.Report, htmlOpts report.HTMLOptions, progress io.Writer) *Analyzer {
	return &Analyzer{
		client:   client,
		cmds:     cmds,
		writer:   writer,
		rep:      rep,
		htmlOpts: htmlOpts,
		progress: progress,
	}
}

// Report returns the run's aggregate report.
func (a *Analyzer) Report() *report.Report { return a.rep }

// logf prints a formatted message to the progress writer if one is set.
func (a *Analyzer) logf(format string, args ...any) {
	if a.progress != nil {
		fmt.Fprintf(a.progress, format+"\n", args...)
	}
}

// warnf records an advisory warning on the report and echoes it to the
// progress writer.
func (a *Analyzer) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.rep.Warn(msg)
	a.logf("[warn] %s", msg)
}

// Run executes the selected module, or the full fixed sequence
// (partitions, filesystem_info, file_listing, deleted_files, timeline).
func (a *Analyzer) Run(module string) error {
	switch module {
	case ModuleFull:
		a.Partitions()
		a.Filesystem()
		a.Files()
		a.Deleted()
		a.Timeline()
	case ModulePartitions:
		a.Partitions()
	case ModuleFilesystem:
		a.Filesystem()
	case ModuleFiles:
		a.Files()
	case ModuleDeleted:
		a.Deleted()
	case ModuleTimeline:
		a.Timeline()
	default:
		return fmt.Errorf("unknown module %q", module)
	}
	return nil
}

// Partitions analyzes the partition table with mmls.
func (a *Analyzer) Partitions() report.Artifact {
	a.logf("[*] Analyzing disk partitions...")
	stdout, stderr, code := a.client.Run(a.cmds.Partitions())
	if code != 0 {
		return a.fail(report.ModulePartitions, "Partition analysis", stderr)
	}

	partitions, skipped := tsk.ParsePartitions(stdout)
	art := &report.Partitions{
		Outcome:      report.Succeeded(),
		Count:        len(partitions),
		SkippedLines: skipped,
		Partitions:   partitions,
	}
	a.rep.Merge(report.ModulePartitions, art)

	if _, err := a.writer.WriteCSV("partitions.csv", report.Rows(partitions)); err != nil {
		a.warnf("write partitions.csv: %v", err)
	}
	a.logf("[ok] Found %d partitions", len(partitions))
	return art
}

// Filesystem captures filesystem statistics with fsstat.
func (a *Analyzer) Filesystem() report.Artifact {
	a.logf("[*] Analyzing filesystem structure...")
	stdout, stderr, code := a.client.Run(a.cmds.FilesystemInfo())
	if code != 0 {
		return a.fail(report.ModuleFilesystemInfo, "Filesystem analysis", stderr)
	}

	art := &report.FilesystemInfo{Outcome: report.Succeeded(), RawOutput: stdout}
	a.rep.Merge(report.ModuleFilesystemInfo, art)

	if _, err := a.writer.WriteText("filesystem_info.txt", stdout); err != nil {
		a.warnf("write filesystem_info.txt: %v", err)
	}
	a.logf("[ok] Filesystem analysis complete")
	return art
}

// Files extracts the full file listing with fls. High-entropy notes on
// stderr become report warnings regardless of the exit code.
func (a *Analyzer) Files() report.Artifact {
	a.logf("[*] Extracting file listing...")
	stdout, stderr, code := a.client.Run(a.cmds.FileListing())

	if msg, ok := tsk.EntropyWarning(stderr); ok {
		a.warnf("%s", msg)
	}

	if code != 0 {
		return a.fail(report.ModuleFileListing, "File listing", stderr)
	}

	files, skipped := tsk.ParseFileListing(stdout)
	art := &report.FileListing{
		Outcome:      report.Succeeded(),
		TotalFiles:   len(files),
		SkippedLines: skipped,
		Files:        files,
	}
	a.rep.Merge(report.ModuleFileListing, art)

	if _, err := a.writer.WriteCSV("file_listing.csv", report.Rows(files)); err != nil {
		a.warnf("write file_listing.csv: %v", err)
	}
	a.logf("[ok] Found %d files", len(files))
	return art
}

// Deleted searches for deleted entries with fls -d and buckets them by
// recoverability.
func (a *Analyzer) Deleted() report.Artifact {
	a.logf("[*] Searching for deleted files...")
	stdout, stderr, code := a.client.Run(a.cmds.DeletedFiles())
	if code != 0 {
		return a.fail(report.ModuleDeletedFiles, "Deleted file search", stderr)
	}

	set := tsk.ClassifyDeleted(stdout)
	art := &report.DeletedFiles{
		Outcome:          report.Succeeded(),
		Count:            len(set.Files),
		RecoverableCount: len(set.Recoverable),
		ReallocCount:     len(set.Realloc),
		Files:            set.Files,
		Recoverable:      set.Recoverable,
		ReallocWarning:   set.Realloc,
	}
	a.rep.Merge(report.ModuleDeletedFiles, art)

	if _, err := a.writer.WriteText("deleted_files.txt", stdout); err != nil {
		a.warnf("write deleted_files.txt: %v", err)
	}
	if len(set.Recoverable) > 0 {
		if _, err := a.writer.WriteText("deleted_files_recoverable.txt", strings.Join(set.Recoverable, "\n")); err != nil {
			a.warnf("write deleted_files_recoverable.txt: %v", err)
		}
	}
	if len(set.Realloc) > 0 {
		if _, err := a.writer.WriteText("deleted_files_realloc.txt", strings.Join(set.Realloc, "\n")); err != nil {
			a.warnf("write deleted_files_realloc.txt: %v", err)
		}
	}

	a.logf("[ok] Found %d deleted files", len(set.Files))
	a.logf("     %d potentially recoverable", len(set.Recoverable))
	a.logf("     %d with reallocation warnings (may be overwritten)", len(set.Realloc))
	return art
}

// Timeline persists the timeline body and records its entry count.
func (a *Analyzer) Timeline() report.Artifact {
	a.logf("[*] Creating filesystem timeline...")
	stdout, stderr, code := a.client.Run(a.cmds.Timeline())
	if code != 0 {
		return a.fail(report.ModuleTimeline, "Timeline creation", stderr)
	}

	entries := tsk.CountTimelineEntries(stdout)
	art := &report.Timeline{Outcome: report.Succeeded(), Entries: entries}
	a.rep.Merge(report.ModuleTimeline, art)

	if _, err := a.writer.WriteText("timeline.txt", stdout); err != nil {
		a.warnf("write timeline.txt: %v", err)
	}
	a.logf("[ok] Timeline created with %d entries", entries)
	return art
}

// Inspect returns detailed istat metadata for a single inode.
func (a *Analyzer) Inspect(inode string) (string, error) {
	a.logf("[*] Analyzing metadata for inode %s...", inode)
	stdout, stderr, code := a.client.Run(a.cmds.InodeStat(inode))
	if code != 0 {
		return "", fmt.Errorf("metadata extraction failed: %s", strings.TrimSpace(stderr))
	}
	a.logf("[ok] Metadata extracted for inode %s", inode)
	return stdout, nil
}

// Recover extracts a file body by inode into the recovered/ subdirectory
// under the caller-supplied name and returns the written path.
func (a *Analyzer) Recover(inode, name string) (string, error) {
	a.logf("[*] Recovering file inode %s...", inode)
	stdout, stderr, code := a.client.Run(a.cmds.Recover(inode))
	if code != 0 {
		return "", fmt.Errorf("file recovery failed: %s", strings.TrimSpace(stderr))
	}
	path, err := a.writer.WriteRecovered(name, []byte(stdout))
	if err != nil {
		return "", fmt.Errorf("write recovered file: %w", err)
	}
	a.logf("[ok] File recovered to %s", path)
	return path, nil
}

// Emit writes the JSON report, and the HTML report when enabled, returning
// the written paths. The report is never mutated after Emit.
func (a *Analyzer) Emit(generateHTML bool, now time.Time) (jsonPath, htmlPath string, err error) {
	jsonPath, err = a.writer.WriteJSON("forensic_report.json", a.rep)
	if err != nil {
		return "", "", fmt.Errorf("write json report: %w", err)
	}
	a.logf("[ok] JSON report saved to %s", jsonPath)

	if generateHTML {
		html, err := report.RenderHTML(a.rep, a.writer.Dir(), now, a.htmlOpts)
		if err != nil {
			return jsonPath, "", fmt.Errorf("render html report: %w", err)
		}
		htmlPath, err = a.writer.WriteText("forensic_report.html", string(html))
		if err != nil {
			return jsonPath, "", fmt.Errorf("write html report: %w", err)
		}
		a.logf("[ok] HTML report saved to %s", htmlPath)
	}
	return jsonPath, htmlPath, nil
}

// fail records a module failure and keeps the run going.
func (a *Analyzer) fail(module, what, stderr string) report.Artifact {
	a.logf("[fail] %s failed: %s", what, strings.TrimSpace(stderr))
	art := &report.Failure{Outcome: report.Failed(stderr)}
	a.rep.Merge(module, art)
	return art
}
