// Package web holds the embedded page templates and the render helper.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/abellini/survey-front/httpx"
	"github.com/abellini/survey-front/log"
)

//go:embed templates static
var files embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(files, "templates/*.gohtml"))

// Page is the envelope every template receives: the document title, the
// signed-in user's display name ("" when anonymous), and page-specific data.
type Page struct {
	Title string
	User  string
	Data  any
}

// Render draws a page template into a buffer and flushes it only if the
// whole template executed; a failing template yields a clean 500 instead of
// a truncated document.
func Render(w http.ResponseWriter, status int, name string, p Page) {
	buf := httpx.NewResponseBuffer()
	buf.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteHeader(status)

	err := pages.ExecuteTemplate(buf, name, p)
	if err != nil {
		httpx.LogInternalError(w, "render."+name, err)
		return
	}

	err = buf.Flush(w)
	if err != nil {
		log.Debugf("render.%s: flush: %s", name, err)
	}
}

// Static serves the embedded stylesheet and assets.
func Static() http.Handler {
	assets, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(assets)))
}
