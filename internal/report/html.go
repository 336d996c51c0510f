package report

import (
	"bytes"
	"embed"
	"html/template"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lucasnoah/disktriage/internal/tsk"
)

//go:embed templates
var templateFS embed.FS

var reportTmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"comma": comma,
	"upper": strings.ToUpper,
}).ParseFS(templateFS, "templates/report.html"))

// HTMLOptions caps the size of sections in the rendered document.
type HTMLOptions struct {
	// MaxFileRows caps the file-listing table; the full listing stays in
	// the CSV. Defaults to 100.
	MaxFileRows int
	// MaxFSInfoChars truncates the filesystem-info block, with no
	// truncation marker. Defaults to 2000.
	MaxFSInfoChars int
}

type htmlView struct {
	AnalysisDate  string
	ImageAnalyzed string
	CaseID        string
	OutputDir     string
	GeneratedAt   string

	TotalFiles      int
	DeletedCount    int
	Recoverable     int
	ReallocCount    int
	PartitionCount  int
	TimelineEntries int

	Partitions []tsk.PartitionEntry
	Files      []tsk.FileEntry
	FileTotal  int
	FSInfo     string
	Modules    []moduleRow
	Warnings   []string
}

type moduleRow struct {
	Title  string
	Status string
	Badge  string
	Detail string
}

// RenderHTML renders the report as a single self-contained HTML document.
// Output is deterministic for a fixed report and generation time.
func RenderHTML(r *Report, outputDir string, now time.Time, opts HTMLOptions) ([]byte, error) {
	if opts.MaxFileRows <= 0 {
		opts.MaxFileRows = 100
	}
	if opts.MaxFSInfoChars <= 0 {
		opts.MaxFSInfoChars = 2000
	}

	view := htmlView{
		AnalysisDate:  r.AnalysisDate,
		ImageAnalyzed: r.ImageAnalyzed,
		CaseID:        r.CaseID,
		OutputDir:     outputDir,
		GeneratedAt:   now.Format("2006-01-02 15:04:05"),
		FSInfo:        "No filesystem information available",
		Warnings:      r.Warnings,
	}

	if fl, ok := r.Artifacts[ModuleFileListing].(*FileListing); ok {
		view.TotalFiles = fl.TotalFiles
		view.FileTotal = len(fl.Files)
		if len(fl.Files) > opts.MaxFileRows {
			view.Files = fl.Files[:opts.MaxFileRows]
		} else {
			view.Files = fl.Files
		}
	}
	if df, ok := r.Artifacts[ModuleDeletedFiles].(*DeletedFiles); ok {
		view.DeletedCount = df.Count
		view.Recoverable = df.RecoverableCount
		view.ReallocCount = df.ReallocCount
	}
	if p, ok := r.Artifacts[ModulePartitions].(*Partitions); ok {
		view.PartitionCount = p.Count
		view.Partitions = p.Partitions
	}
	if tl, ok := r.Artifacts[ModuleTimeline].(*Timeline); ok {
		view.TimelineEntries = tl.Entries
	}
	if fi, ok := r.Artifacts[ModuleFilesystemInfo].(*FilesystemInfo); ok && fi.RawOutput != "" {
		raw := fi.RawOutput
		if len(raw) > opts.MaxFSInfoChars {
			cut := opts.MaxFSInfoChars
			// Never split a multi-byte rune at the cap.
			for cut > 0 && !utf8.RuneStart(raw[cut]) {
				cut--
			}
			raw = raw[:cut]
		}
		view.FSInfo = raw
	}

	// Iterate modules in sorted key order so re-emits are byte-identical.
	names := make([]string, 0, len(r.Artifacts))
	for name := range r.Artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		art := r.Artifacts[name]
		badge := "error"
		status := StatusFailed
		if art.Succeeded() {
			badge = "success"
			status = StatusSuccess
		}
		view.Modules = append(view.Modules, moduleRow{
			Title:  moduleTitle(name),
			Status: status,
			Badge:  badge,
			Detail: art.Detail(),
		})
	}

	var buf bytes.Buffer
	if err := reportTmpl.ExecuteTemplate(&buf, "report.html", view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// moduleTitle turns a module key like "file_listing" into "File Listing".
func moduleTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
