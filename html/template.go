// Package html renders the printable PPE pages.
package html

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"focolog/html/parts"
	"focolog/model/entity"
	"focolog/service/delivery"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template is the echo renderer for the embedded templates.
type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewTemplate parses the embedded templates.
func NewTemplate() *Template {
	return &Template{Templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))}
}

var funcs = template.FuncMap{
	"criticalCSS":  parts.CriticalCSS,
	"date":         formatDate,
	"holdingLabel": holdingLabel,
}

// formatDate prints DD/MM/YYYY; zero values print nothing.
func formatDate(v interface{}) string {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case entity.Date:
		t = d.Time
	case *entity.Date:
		if d == nil {
			return ""
		}
		t = d.Time
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func holdingLabel(status string) string {
	switch status {
	case delivery.HoldingExpired:
		return "CA vencido"
	case delivery.HoldingExpiring:
		return "CA a vencer"
	}
	return "Regular"
}
