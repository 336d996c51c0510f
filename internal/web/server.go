// Package web serves a read-only localhost browser over a disktriage
// output directory: an index of analysis runs, each run's HTML and JSON
// reports, and its companion artifact files.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lucasnoah/disktriage/internal/report"
)

//go:embed templates
var templateFS embed.FS

var funcMap = template.FuncMap{
	"badgeClass": func(status string) string {
		if status == report.StatusSuccess {
			return "badge success"
		}
		return "badge error"
	},
	"upper": strings.ToUpper,
}

const reportSuffix = "_forensic_report.json"

var (
	tsRe   = regexp.MustCompile(`^[0-9]{8}_[0-9]{6}$`)
	nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

// Server is the read-only report browser.
type Server struct {
	dir  string
	port int

	indexTmpl *template.Template
	runTmpl   *template.Template
}

// NewServer creates a Server over the given output directory.
func NewServer(dir string, port int) *Server {
	return &Server{
		dir:       dir,
		port:      port,
		indexTmpl: mustParseTmpl("index.html"),
		runTmpl:   mustParseTmpl("run.html"),
	}
}

func mustParseTmpl(names ...string) *template.Template {
	patterns := make([]string, len(names))
	for i, n := range names {
		patterns[i] = "templates/" + n
	}
	return template.Must(template.New("").Funcs(funcMap).ParseFS(templateFS, patterns...))
}

// Handler returns the route tree wrapped in request logging.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/run/{ts}", s.handleRun)
	r.Get("/run/{ts}/report.json", s.handleRunJSON)
	r.Get("/run/{ts}/files/{name}", s.handleRunFile)
	return loggingMiddleware(r)
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("disktriage report browser: http://localhost%s (dir %s)", addr, s.dir)
	return http.ListenAndServe(addr, s.Handler())
}

// runEntry is one discovered analysis run on the index page.
type runEntry struct {
	TS            string
	AnalysisDate  string
	ImageAnalyzed string
	CaseID        string
	Modules       int
	Failed        int
}

// listRuns scans the output directory for emitted report JSON files,
// newest first.
func (s *Server) listRuns() ([]runEntry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var runs []runEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), reportSuffix) {
			continue
		}
		ts := strings.TrimSuffix(e.Name(), reportSuffix)
		if !tsRe.MatchString(ts) {
			continue
		}
		run := runEntry{TS: ts}
		if rep, err := report.Load(s.runPath(ts, "forensic_report.json")); err == nil {
			run.AnalysisDate = rep.AnalysisDate
			run.ImageAnalyzed = rep.ImageAnalyzed
			run.CaseID = rep.CaseID
			run.Modules = len(rep.Artifacts)
			for _, art := range rep.Artifacts {
				if !art.Succeeded() {
					run.Failed++
				}
			}
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].TS > runs[j].TS })
	return runs, nil
}

// runPath joins the output dir with a timestamp-prefixed run file name.
func (s *Server) runPath(ts, name string) string {
	return s.dir + string(os.PathSeparator) + ts + "_" + name
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		log.Printf("method=%s path=%s status=%d ip=%s", r.Method, r.URL.Path, wrapped.statusCode, r.RemoteAddr)
	})
}
