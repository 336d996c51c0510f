package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lucasnoah/disktriage/internal/tsk"
)

func sampleReport() *Report {
	now := time.Date(2026, 8, 26, 15, 12, 3, 0, time.UTC)
	r := New(now, "/cases/disk.dd", "case-123")
	r.Merge(ModulePartitions, &Partitions{
		Outcome: Succeeded(),
		Count:   1,
		Partitions: []tsk.PartitionEntry{
			{Slot: "1:0:00", Start: "2048", End: "204800", Length: "202753", Description: "Linux (0x83)"},
		},
	})
	r.Merge(ModuleFileListing, &FileListing{
		Outcome:    Succeeded(),
		TotalFiles: 2,
		Files: []tsk.FileEntry{
			{Type: "r/r", Inode: "12", Name: "/etc/passwd", Mode: "100644", Size: "1024"},
			{Type: "d/d", Inode: "5", Name: "/home", Mode: "040755", Size: "4096"},
		},
	})
	r.Merge(ModuleDeletedFiles, &DeletedFiles{
		Outcome:          Succeeded(),
		Count:            2,
		RecoverableCount: 1,
		ReallocCount:     1,
		Files:            []string{"r/r 46:  note.txt", "r/r * 45:  recovered.txt (realloc)"},
		Recoverable:      []string{"r/r 46:  note.txt"},
		ReallocWarning:   []string{"r/r * 45:  recovered.txt (realloc)"},
	})
	r.Merge(ModuleFilesystemInfo, &FilesystemInfo{Outcome: Succeeded(), RawOutput: "FILE SYSTEM INFORMATION"})
	r.Merge(ModuleTimeline, &Failure{Outcome: Failed("Command timed out")})
	r.Warn("High entropy files detected - may indicate encryption or compression")
	return r
}

func TestReport_JSONRoundTrip(t *testing.T) {
	orig := sampleReport()
	data, err := json.MarshalIndent(orig, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ImageAnalyzed != orig.ImageAnalyzed {
		t.Errorf("image: expected %q, got %q", orig.ImageAnalyzed, got.ImageAnalyzed)
	}
	if got.CaseID != "case-123" {
		t.Errorf("case: expected case-123, got %q", got.CaseID)
	}
	if len(got.Artifacts) != len(orig.Artifacts) {
		t.Fatalf("expected %d artifacts, got %d", len(orig.Artifacts), len(got.Artifacts))
	}
	if len(got.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(got.Warnings))
	}

	fl, ok := got.Artifacts[ModuleFileListing].(*FileListing)
	if !ok {
		t.Fatalf("file_listing decoded as %T", got.Artifacts[ModuleFileListing])
	}
	if fl.TotalFiles != 2 || len(fl.Files) != 2 {
		t.Errorf("expected 2 files, got total=%d len=%d", fl.TotalFiles, len(fl.Files))
	}
	if fl.Files[0].Name != "/etc/passwd" {
		t.Errorf("expected /etc/passwd, got %q", fl.Files[0].Name)
	}

	df, ok := got.Artifacts[ModuleDeletedFiles].(*DeletedFiles)
	if !ok {
		t.Fatalf("deleted_files decoded as %T", got.Artifacts[ModuleDeletedFiles])
	}
	if df.RecoverableCount+df.ReallocCount != df.Count {
		t.Errorf("counts not total: %d + %d != %d", df.RecoverableCount, df.ReallocCount, df.Count)
	}

	tl, ok := got.Artifacts[ModuleTimeline].(*Failure)
	if !ok {
		t.Fatalf("failed timeline decoded as %T", got.Artifacts[ModuleTimeline])
	}
	if tl.Succeeded() {
		t.Error("expected timeline failure")
	}
	if tl.ErrorText() != "Command timed out" {
		t.Errorf("expected timeout error text, got %q", tl.ErrorText())
	}
}

func TestDecodeArtifact_FailureByStatusPeek(t *testing.T) {
	data := []byte(`{"status":"failed","error":"cannot open image"}`)
	art, err := decodeArtifact(ModuleFileListing, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := art.(*Failure); !ok {
		t.Fatalf("expected *Failure, got %T", art)
	}
	if art.ErrorText() != "cannot open image" {
		t.Errorf("unexpected error text: %q", art.ErrorText())
	}
}

func TestDecodeArtifact_UnknownModuleKeepsOutcome(t *testing.T) {
	data := []byte(`{"status":"success","whatever":1}`)
	art, err := decodeArtifact("registry_hives", data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !art.Succeeded() {
		t.Error("expected success outcome")
	}
}

func TestArtifact_DetailStrings(t *testing.T) {
	tests := []struct {
		art  Artifact
		want string
	}{
		{&FileListing{TotalFiles: 1234567}, "1,234,567 files"},
		{&Partitions{Count: 3}, "3 items"},
		{&DeletedFiles{Count: 12}, "12 items"},
		{&Timeline{Entries: 1000}, "1,000 entries"},
		{&FilesystemInfo{}, "Completed"},
		{&Failure{}, "Completed"},
	}
	for _, tt := range tests {
		if got := tt.art.Detail(); got != tt.want {
			t.Errorf("%T: expected %q, got %q", tt.art, tt.want, got)
		}
	}
}

func TestReport_WarningsOmittedWhenEmpty(t *testing.T) {
	r := New(time.Now(), "img.dd", "c1")
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "warnings") {
		t.Error("expected warnings key to be omitted when empty")
	}
}

func TestComma(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for n, want := range tests {
		if got := comma(n); got != want {
			t.Errorf("comma(%d): expected %q, got %q", n, want, got)
		}
	}
}
