// Package swagger serves the moviefront API reference.
package swagger

import (
	"context"
	"net/http"
)

// RedocScript is the ReDoc bundle loaded by the docs page.
const RedocScript = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"

const (
	docsTitle       = "moviefront API reference"
	docsDescription = "Search, session and autocomplete endpoints of the moviefront recommendation front end."
)

// Register serves the reference page on /api-docs and the OpenAPI document
// it renders on /openapi.yaml.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/api-docs", serveDocs)
	mux.HandleFunc("/openapi.yaml", serveDocument)
}

func serveDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(docsPage))
}

func serveDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(OpenAPI)
}

var docsPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="description" content="` + docsDescription + `">
<title>` + docsTitle + `</title>
</head>
<body style="margin:0">
<redoc spec-url="/openapi.yaml" hide-download-button></redoc>
<script src="` + RedocScript + `"></script>
</body>
</html>`
