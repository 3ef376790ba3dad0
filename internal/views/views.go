package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html layouts/*.html
var files embed.FS

const Layout = "layouts/main"

// New returns a view engine over the embedded templates.
func New() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
