package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts/*.html partials/*.html admin/*.html *.html
var files embed.FS

// NewEngine returns the template engine over the embedded templates.
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("flashClass", func(kind any) string {
		switch kind {
		case "success":
			return "flash flash-success"
		case "info":
			return "flash flash-info"
		default:
			return "flash flash-error"
		}
	})
	return engine
}
