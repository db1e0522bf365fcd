package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates
var viewsFS embed.FS

var indexTmpl *template.Template

// loadTemplatesFromFS parses the page templates under dir in fsys.
// Tests use it to simulate broken template sets.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	indexTmpl, err = template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads the embedded templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Route describes one API endpoint on the index page.
type Route struct {
	Path        string
	Description string
}

type IndexData struct {
	FirstDate string
	LastDate  string
	Routes    []Route
}

// DefaultRoutes lists the API endpoints in the order the index shows them.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/api/precipitation", Description: "Daily precipitation for every station"},
		{Path: "/api/stations", Description: "Weather stations"},
		{Path: "/api/temperature", Description: "Temperature observations for the last year of data"},
		{Path: "/api/<start>", Description: "Average, max and min temperature from start (YYYY-MM-DD)"},
		{Path: "/api/<start>/<end>", Description: "Average, max and min temperature from start to end inclusive"},
	}
}

func RenderIndex(w io.Writer, data *IndexData) error {
	if indexTmpl == nil {
		return errors.New("index template not loaded: call views.LoadTemplates during startup")
	}
	return indexTmpl.ExecuteTemplate(w, "index.html", data)
}
