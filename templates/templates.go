// Package templates embeds the HTML pages and their static assets into the binary.
package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed *.html
var pages embed.FS

//go:embed static
var static embed.FS

var funcs = template.FuncMap{
	"withTitle": withTitle,
}

// Load parses every page; each is addressed by its file name, e.g. "login.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(pages, "*.html")
}

// withTitle copies the page data and adds the title shown by the layout.
func withTitle(data map[string]interface{}, title string) map[string]interface{} {
	out := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["Title"] = title
	return out
}

// Static serves app.js and style.css.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
