// Package views embeds the server-rendered pages.
package views

import (
	"embed"
	"html/template"

	"doctor-portal-server/internal/utils"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page. Pages are addressed by file name, e.g.
// "signin.html"; layout.html and patient_form.html only hold shared blocks.
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"date": utils.FormatDate}).
		ParseFS(files, "templates/*.html")
}
