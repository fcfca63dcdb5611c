package main

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/contexthelpers"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
)

// distance formats meters, switching to kilometers from 1000 m.
func distance(meters float64) string {
	if meters >= 1000 { //nolint:mnd // meters in a kilometer
		return strconv.FormatFloat(meters/1000, 'f', -1, 64) + " km" //nolint:mnd // see above
	}
	return strconv.FormatFloat(meters, 'f', -1, 64) + " m"
}

// duration formats seconds like 1m30s.
func duration(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

// parseFuncs are the template functions known at parse time. The request dependent ones are placeholders that
// requestFuncs replaces before execution.
func parseFuncs() template.FuncMap {
	return template.FuncMap{
		"distance": distance,
		"duration": duration,
		"nonce": func() template.HTMLAttr {
			panic("nonce called outside of a request")
		},
		"mdToHTML": func(string) template.HTML {
			panic("mdToHTML called outside of a request")
		},
	}
}

func (app *application) requestFuncs(ctx context.Context) template.FuncMap {
	nonce := fmt.Sprintf(`nonce="%s"`, contexthelpers.CSPNonce(ctx))
	return template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // the nonce is generated by secureHeaders.
		},
		"mdToHTML": func(markdown string) template.HTML {
			return app.renderMarkdownToHTML(ctx, markdown)
		},
	}
}

// renderMarkdownToHTML falls back to escaped text when the markdown cannot be converted.
func (app *application) renderMarkdownToHTML(ctx context.Context, markdown string) template.HTML {
	html, err := fitnessplan.RenderHTML(markdown)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "failed to render markdown", errors.SlogError(err))
		return template.HTML(template.HTMLEscapeString(markdown)) //nolint:gosec // escaped above.
	}
	return html
}

// pageTemplate parses base.gohtml together with ui/templates/pages/<pageName>, which must define "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	t, err := template.New(pageName).
		Funcs(parseFuncs()).
		ParseFS(app.templateFS, "base.gohtml", fmt.Sprintf("pages/%s/*.gohtml", pageName))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", pageName, err)
	}
	return t, nil
}

// render executes the page into a buffer first so that template errors still produce a clean 500.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, pageName string, data any) {
	t, err := app.pageTemplate(pageName)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err = t.Funcs(app.requestFuncs(r.Context())).ExecuteTemplate(&buf, "base", data); err != nil {
		app.serverError(w, r, fmt.Errorf("execute page %s: %w", pageName, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
