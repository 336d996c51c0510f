package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lucasnoah/disktriage/internal/tsk"
)

// Module keys. A full run executes them in exactly this order; each module
// writes to its own key, so artifacts never share state.
const (
	ModulePartitions     = "partitions"
	ModuleFilesystemInfo = "filesystem_info"
	ModuleFileListing    = "file_listing"
	ModuleDeletedFiles   = "deleted_files"
	ModuleTimeline       = "timeline"
)

// Artifact status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Report is the top-level aggregate for one analysis run. It is built once,
// mutated only by Merge, and never changed after the final emit.
type Report struct {
	AnalysisDate  string              `json:"analysis_date"`
	ImageAnalyzed string              `json:"image_analyzed"`
	CaseID        string              `json:"case_id"`
	Artifacts     map[string]Artifact `json:"artifacts"`
	Warnings      []string            `json:"warnings,omitempty"`
}

// New creates an empty Report for the given image.
func New(now time.Time, image, caseID string) *Report {
	return &Report{
		AnalysisDate:  now.Format(time.RFC3339),
		ImageAnalyzed: image,
		CaseID:        caseID,
		Artifacts:     make(map[string]Artifact),
	}
}

// Merge stores a module's artifact under its key.
func (r *Report) Merge(name string, art Artifact) {
	r.Artifacts[name] = art
}

// Warn appends an advisory warning to the report.
func (r *Report) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Artifact is the tagged outcome of one analysis module: either a typed
// success payload or a bare Failure. Exactly one variant is ever active.
type Artifact interface {
	// Succeeded reports whether the module completed.
	Succeeded() bool
	// ErrorText returns the captured error for failed modules, "" otherwise.
	ErrorText() string
	// Detail returns a human-readable count summary for status tables.
	Detail() string
}

// Outcome carries the status tag shared by every artifact variant.
type Outcome struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (o Outcome) Succeeded() bool   { return o.Status == StatusSuccess }
func (o Outcome) ErrorText() string { return o.Error }

// Succeeded returns the success outcome tag.
func Succeeded() Outcome { return Outcome{Status: StatusSuccess} }

// Failed returns a failure outcome carrying the raw error text.
func Failed(errText string) Outcome {
	return Outcome{Status: StatusFailed, Error: errText}
}

// Failure is a module outcome with no payload, used for any failed module.
type Failure struct {
	Outcome
}

func (f *Failure) Detail() string { return "Completed" }

// Partitions is the partition-analysis artifact.
type Partitions struct {
	Outcome
	Count        int                  `json:"count"`
	SkippedLines int                  `json:"skipped_lines"`
	Partitions   []tsk.PartitionEntry `json:"partitions"`
}

func (p *Partitions) Detail() string { return fmt.Sprintf("%d items", p.Count) }

// FilesystemInfo is the fsstat artifact; the tool output is kept raw.
type FilesystemInfo struct {
	Outcome
	RawOutput string `json:"raw_output"`
}

func (f *FilesystemInfo) Detail() string { return "Completed" }

// FileListing is the fls file-listing artifact.
type FileListing struct {
	Outcome
	TotalFiles   int             `json:"total_files"`
	SkippedLines int             `json:"skipped_lines"`
	Files        []tsk.FileEntry `json:"files"`
}

func (f *FileListing) Detail() string { return comma(f.TotalFiles) + " files" }

// DeletedFiles is the deleted-entry artifact. The classification is total
// and mutually exclusive: RecoverableCount + ReallocCount == Count.
type DeletedFiles struct {
	Outcome
	Count            int      `json:"count"`
	RecoverableCount int      `json:"recoverable_count"`
	ReallocCount     int      `json:"realloc_count"`
	Files            []string `json:"files"`
	Recoverable      []string `json:"recoverable"`
	ReallocWarning   []string `json:"realloc_warning"`
}

func (d *DeletedFiles) Detail() string { return fmt.Sprintf("%d items", d.Count) }

// Timeline is the timeline artifact; only the entry count lives in the
// report, the body goes to the companion text file.
type Timeline struct {
	Outcome
	Entries int `json:"entries"`
}

func (t *Timeline) Detail() string { return comma(t.Entries) + " entries" }

// artifactTypes maps module keys to their success payload constructors.
var artifactTypes = map[string]func() Artifact{
	ModulePartitions:     func() Artifact { return &Partitions{} },
	ModuleFilesystemInfo: func() Artifact { return &FilesystemInfo{} },
	ModuleFileListing:    func() Artifact { return &FileListing{} },
	ModuleDeletedFiles:   func() Artifact { return &DeletedFiles{} },
	ModuleTimeline:       func() Artifact { return &Timeline{} },
}

// UnmarshalJSON decodes a report, reconstructing the typed artifact for
// each module key.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw struct {
		AnalysisDate  string                     `json:"analysis_date"`
		ImageAnalyzed string                     `json:"image_analyzed"`
		CaseID        string                     `json:"case_id"`
		Artifacts     map[string]json.RawMessage `json:"artifacts"`
		Warnings      []string                   `json:"warnings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.AnalysisDate = raw.AnalysisDate
	r.ImageAnalyzed = raw.ImageAnalyzed
	r.CaseID = raw.CaseID
	r.Warnings = raw.Warnings
	r.Artifacts = make(map[string]Artifact, len(raw.Artifacts))
	for name, msg := range raw.Artifacts {
		art, err := decodeArtifact(name, msg)
		if err != nil {
			return fmt.Errorf("artifact %q: %w", name, err)
		}
		r.Artifacts[name] = art
	}
	return nil
}

// decodeArtifact peeks the status tag to pick the failure variant, then
// falls back to the per-module success payload type. Unknown module keys
// keep only their outcome.
func decodeArtifact(name string, data []byte) (Artifact, error) {
	newFn, ok := artifactTypes[name]
	if !ok || gjson.GetBytes(data, "status").String() != StatusSuccess {
		f := &Failure{}
		return f, json.Unmarshal(data, f)
	}
	art := newFn()
	return art, json.Unmarshal(data, art)
}

// Load reads a previously emitted report JSON file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &r, nil
}

// comma formats n with thousands separators ("1234567" -> "1,234,567").
func comma(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
