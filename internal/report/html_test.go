package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lucasnoah/disktriage/internal/tsk"
)

var fixedNow = time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

func TestRenderHTML_Deterministic(t *testing.T) {
	rep := sampleReport()

	first, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{})
	if err != nil {
		t.Fatalf("re-render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("expected byte-identical output for fixed report and time")
	}
}

func TestRenderHTML_DeletedSectionOnlyWhenNonZero(t *testing.T) {
	rep := sampleReport()
	html, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "Deleted Files Recovery Analysis") {
		t.Error("expected deleted-files section for non-zero count")
	}

	rep.Artifacts[ModuleDeletedFiles] = &DeletedFiles{Outcome: Succeeded()}
	html, err = RenderHTML(rep, "out", fixedNow, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "Deleted Files Recovery Analysis") {
		t.Error("expected no deleted-files section for zero count")
	}
}

func TestRenderHTML_PartitionsSectionOnlyWhenNonEmpty(t *testing.T) {
	rep := sampleReport()
	rep.Artifacts[ModulePartitions] = &Partitions{Outcome: Succeeded()}
	html, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "Disk Partitions") {
		t.Error("expected no partitions section when empty")
	}
}

func TestRenderHTML_FileTableCapAndNote(t *testing.T) {
	rep := sampleReport()
	files := make([]tsk.FileEntry, 150)
	for i := range files {
		files[i] = tsk.FileEntry{Type: "r/r", Name: "/f", Inode: "1"}
	}
	rep.Artifacts[ModuleFileListing] = &FileListing{
		Outcome:    Succeeded(),
		TotalFiles: 150,
		Files:      files,
	}

	html, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{MaxFileRows: 100})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Count(string(html), `word-break: break-all;`); got != 100 {
		t.Errorf("expected 100 file rows, got %d", got)
	}
	if !strings.Contains(string(html), "Showing first 100 of 150 files") {
		t.Error("expected see-CSV note when file count exceeds the cap")
	}
}

func TestRenderHTML_NoNoteWhenUnderCap(t *testing.T) {
	rep := sampleReport()
	html, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "See the CSV export") {
		t.Error("expected no pagination note when all files fit")
	}
}

func TestRenderHTML_FSInfoTruncatedWithoutMarker(t *testing.T) {
	rep := sampleReport()
	rep.Artifacts[ModuleFilesystemInfo] = &FilesystemInfo{
		Outcome:   Succeeded(),
		RawOutput: strings.Repeat("x", 3000),
	}

	html, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{MaxFSInfoChars: 2000})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), strings.Repeat("x", 2001)) {
		t.Error("expected fs info truncated to 2000 chars")
	}
	if !strings.Contains(string(html), strings.Repeat("x", 2000)) {
		t.Error("expected 2000 chars of fs info present")
	}
}

func TestRenderHTML_FSInfoTruncationKeepsRunesIntact(t *testing.T) {
	rep := sampleReport()
	// "é" is two bytes and straddles the 2000-byte cap.
	rep.Artifacts[ModuleFilesystemInfo] = &FilesystemInfo{
		Outcome:   Succeeded(),
		RawOutput: strings.Repeat("x", 1999) + "é" + strings.Repeat("y", 100),
	}

	html, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{MaxFSInfoChars: 2000})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "�") {
		t.Error("expected no replacement character from a split rune")
	}
	if !strings.Contains(string(html), strings.Repeat("x", 1999)) {
		t.Error("expected fs info kept up to the rune boundary")
	}
	if strings.Contains(string(html), "é") {
		t.Error("expected the straddling rune to be dropped")
	}
}

func TestRenderHTML_ModuleStatusBadges(t *testing.T) {
	rep := sampleReport()
	html, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(html)
	if !strings.Contains(s, `<span class="badge success">SUCCESS</span>`) {
		t.Error("expected success badge")
	}
	if !strings.Contains(s, `<span class="badge error">FAILED</span>`) {
		t.Error("expected error badge for failed timeline")
	}
	if !strings.Contains(s, "<strong>File Listing</strong>") {
		t.Error("expected humanized module title")
	}
	if !strings.Contains(s, "2 files") {
		t.Error("expected file-count detail string")
	}
}

func TestRenderHTML_GenerationTimestamp(t *testing.T) {
	rep := sampleReport()
	html, err := RenderHTML(rep, "out", fixedNow, HTMLOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "2026-08-26 15:30:00") {
		t.Error("expected injected generation timestamp in output")
	}
}
