package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/aeropulse/aeropulse/internal/aqi"
	"github.com/aeropulse/aeropulse/internal/database"
	"github.com/aeropulse/aeropulse/internal/export"
	"github.com/aeropulse/aeropulse/internal/synth"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server is the HTTP server for the local dashboard.
type Server struct {
	db    *database.DB
	pages map[string]*template.Template
	mux   *http.ServeMux
}

// New creates a new Server.
func New(db *database.DB) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "city.html", "report.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{db: db, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Routes
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/city/", s.handleCity)
	s.mux.HandleFunc("/api/city/", s.handleAPIRecords)
}

// cityRow is one row of the index table.
type cityRow struct {
	Name       string
	HasDataset bool
	Records    int
	HasReport  bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	datasets, err := s.db.ListDatasets()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	reports, _ := s.db.ListReports()

	byCity := make(map[string]database.Dataset, len(datasets))
	for _, d := range datasets {
		byCity[d.City] = d
	}
	reported := make(map[string]bool, len(reports))
	for _, rep := range reports {
		reported[rep.City] = true
	}

	var rows []cityRow
	for _, city := range synth.Cities() {
		row := cityRow{Name: city, HasReport: reported[city]}
		if d, ok := byCity[city]; ok {
			row.HasDataset = true
			row.Records = d.RecordCount
		}
		rows = append(rows, row)
	}

	s.render(w, "index.html", map[string]any{
		"Cities": rows,
		"Period": export.PeriodDisplay(),
	})
}

// handleCity dispatches /city/<name>, /city/<name>/report, and
// /city/<name>/export.csv.
func (s *Server) handleCity(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/city/")
	if path == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	city := parts[0]

	if len(parts) == 2 {
		switch parts[1] {
		case "report":
			s.handleReport(w, r, city)
		case "export.csv":
			s.handleExportCSV(w, r, city)
		default:
			http.NotFound(w, r)
		}
		return
	}

	s.handleDashboard(w, r, city)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, city string) {
	records, err := s.db.GetRecords(city)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"City":   city,
		"Period": export.PeriodDisplay(),
		"Count":  len(records),
	}

	if len(records) > 0 {
		latest := records[len(records)-1]
		data["Latest"] = latest
		data["Category"] = aqi.CategoryForPM25(latest.PM25)
	}

	if report, _ := s.db.GetReport(city); report != nil {
		data["Report"] = report
	}

	s.render(w, "city.html", data)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request, city string) {
	report, err := s.db.GetReport(city)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "report.html", map[string]any{
		"City":   city,
		"Report": report,
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request, city string) {
	records, err := s.db.GetRecords(city)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if len(records) == 0 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", city+".csv"))
	if err := export.WriteCSV(w, records); err != nil {
		log.Printf("csv export for %s: %v", city, err)
	}
}

// handleAPIRecords serves the raw record series as JSON for charting.
func (s *Server) handleAPIRecords(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/city/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[1] != "records" {
		http.NotFound(w, r)
		return
	}
	city := parts[0]

	records, err := s.db.GetRecords(city)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []synth.Record{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		log.Printf("encoding records for %s: %v", city, err)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(db *database.DB, port int) error {
	srv, err := New(db)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
