package parts

import (
	_ "embed"
	"html/template"
)

//go:embed print.css
var printCSS string

// CriticalCSS is the inline stylesheet of the printable pages.
func CriticalCSS() template.CSS {
	return template.CSS(printCSS)
}
