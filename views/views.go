package views

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(
	template.New("").
		Funcs(template.FuncMap{"timestamp": timestamp}).
		ParseFS(files, "templates/*.html"),
)

// Render executes the named template and writes it as an HTML page. Nothing
// is written to w when the template fails.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) error {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return err
	}

	render.HTML(w, r, buf.String())
	return nil
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
