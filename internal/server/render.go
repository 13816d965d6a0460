package server

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/view"

	"github.com/carlmjohnson/versioninfo"
	"github.com/labstack/echo/v4"
)

//go:embed web/templates/*.html
var templateFS embed.FS

//go:embed web/static
var staticFS embed.FS

// Template names.
const (
	TEMPLATE_INDEX            = "index"
	TEMPLATE_LOGIN            = "login"
	TEMPLATE_DASHBOARD        = "dashboard"
	TEMPLATE_DASHBOARD_LEGACY = "dashboard_legacy"
	TEMPLATE_MODAL            = "modal"
)

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"num":     view.FormatNumber,
		"version": versioninfo.Short,
		"valueId": valueElementId,
	}
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "web/templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// valueElementId is the DOM id of a card value.
func valueElementId(id domain.ChannelId) string {
	if id == domain.CHANNEL_TEMPERATURE {
		return "tempValue"
	}
	return string(id) + "Value"
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "web/static")
	if err != nil {
		panic(err)
	}
	return sub
}
