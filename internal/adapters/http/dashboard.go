package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

//go:embed web
var webFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(webFS, "web/templates/dashboard.html"))

type dashboardPage struct {
	Title  string
	Detail *domain.Detail
	Sites  int
}

// DashboardHandler renders the map page with the session's current detail
// panel filled in server-side.
func DashboardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := dashboardPage{Title: "Ecoaldeas", Sites: deps.Sites.Count()}

		d, err := deps.Selections.Detail(c.UserContext(), sessionID(c))
		switch {
		case err == nil:
			page.Detail = &d
		case errors.Is(err, domain.ErrNoSelection):
			// rendered as "nothing selected"
		default:
			LoggerFromCtx(c.UserContext()).Error("load detail", "error", err)
			return errInternal(c, "could not load selection")
		}

		var buf bytes.Buffer
		if err := dashboardTmpl.Execute(&buf, page); err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Cache-Control", "no-store")
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	}
}

// StaticHandler serves the embedded scripts and stylesheet.
func StaticHandler() fiber.Handler {
	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic("embedded static assets: " + err.Error())
	}
	return filesystem.New(filesystem.Config{
		Root:   nethttp.FS(static),
		MaxAge: 3600,
	})
}
