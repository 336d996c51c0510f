package web

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lucasnoah/disktriage/internal/report"
)

// ---- view models ----

type indexData struct {
	Dir  string
	Runs []runEntry
}

type runData struct {
	TS      string
	Report  *report.Report
	Modules []moduleRow
	Files   []string
}

type moduleRow struct {
	Name   string
	Status string
	Error  string
	Detail string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	runs, err := s.listRuns()
	if err != nil {
		http.Error(w, "read output directory: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, s.indexTmpl, "index.html", indexData{Dir: s.dir, Runs: runs})
}

// handleRun serves the run's emitted HTML report when it exists, falling
// back to a rendered summary of the JSON report.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	ts := chi.URLParam(r, "ts")
	if !tsRe.MatchString(ts) {
		http.NotFound(w, r)
		return
	}

	htmlPath := s.runPath(ts, "forensic_report.html")
	if _, err := os.Stat(htmlPath); err == nil {
		http.ServeFile(w, r, htmlPath)
		return
	}

	rep, err := report.Load(s.runPath(ts, "forensic_report.json"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := runData{TS: ts, Report: rep, Files: s.companionFiles(ts)}
	names := make([]string, 0, len(rep.Artifacts))
	for name := range rep.Artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		art := rep.Artifacts[name]
		status := report.StatusFailed
		if art.Succeeded() {
			status = report.StatusSuccess
		}
		data.Modules = append(data.Modules, moduleRow{
			Name:   name,
			Status: status,
			Error:  art.ErrorText(),
			Detail: art.Detail(),
		})
	}
	s.render(w, s.runTmpl, "run.html", data)
}

func (s *Server) handleRunJSON(w http.ResponseWriter, r *http.Request) {
	ts := chi.URLParam(r, "ts")
	if !tsRe.MatchString(ts) {
		http.NotFound(w, r)
		return
	}
	path := s.runPath(ts, "forensic_report.json")
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, path)
}

// handleRunFile serves a companion artifact. Names are restricted to a
// strict allowlist pattern and must carry the run's timestamp prefix, so
// path traversal and cross-run reads are rejected outright.
func (s *Server) handleRunFile(w http.ResponseWriter, r *http.Request) {
	ts := chi.URLParam(r, "ts")
	name := chi.URLParam(r, "name")
	if !tsRe.MatchString(ts) || !nameRe.MatchString(name) || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	if !strings.HasPrefix(name, ts+"_") {
		http.NotFound(w, r)
		return
	}
	path := s.dir + string(os.PathSeparator) + name
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// companionFiles lists the run's timestamp-prefixed artifact files.
func (s *Server) companionFiles(ts string) []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), ts+"_") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
