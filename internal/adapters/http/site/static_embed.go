package site

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

// FS returns an http.FileSystem for the embedded page assets.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

// pageTemplate is parsed once; a broken template fails at start-up.
var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html.tmpl"))
