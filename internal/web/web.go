package web

import (
	"embed"
	"html/template"

	"accumulator/internal/attendance"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"isoTime": attendance.FormatTimestamp,
	}
}

// Templates parses the embedded pages.
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

// MustTemplates is Templates for program start up.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
