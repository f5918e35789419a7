package web

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/heartmarshall/tinywin-backend/internal/service/tinywin"
)

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:40rem;margin:2rem auto;padding:0 1rem}` +
	`li{margin:.75rem 0}.meta{color:#666;font-size:.85rem}.empty{color:#666}`

// ListPageVModel is the data rendered by ListPage.
type ListPageVModel struct {
	Wins []tinywin.Record
}

// ListPage renders the tiny wins newest first. All record text is escaped.
func ListPage(vmodel ListPageVModel) templ.Component {
	return layout("Tiny wins", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Tiny wins</h1>"); err != nil {
			return err
		}

		if len(vmodel.Wins) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No wins yet.</p>`)
			return err
		}

		if _, err := io.WriteString(w, "<ul>"); err != nil {
			return err
		}
		for _, win := range vmodel.Wins {
			if err := winItem(win).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	}))
}

func winItem(win tinywin.Record) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<li data-id="%d"><strong>%s</strong>`, win.ID, templ.EscapeString(win.Title))
		if err != nil {
			return err
		}
		if win.Description != nil {
			if _, err := fmt.Fprintf(w, "<p>%s</p>", templ.EscapeString(*win.Description)); err != nil {
				return err
			}
		}

		meta := templ.EscapeString(win.CompletedAt)
		if win.Category != nil {
			meta = templ.EscapeString(*win.Category) + " &middot; " + meta
		}
		_, err = fmt.Fprintf(w, `<div class="meta">%s</div></li>`, meta)
		return err
	})
}

// ErrorPageVModel is the data rendered by ErrorPage.
type ErrorPageVModel struct {
	StatusCode int
}

// ErrorPage renders a generic error page for the given status.
func ErrorPage(vmodel ErrorPageVModel) templ.Component {
	title := http.StatusText(vmodel.StatusCode)
	return layout(title, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<h1>%d</h1><p>%s</p>", vmodel.StatusCode, templ.EscapeString(title))
		return err
	}))
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title><style>%s</style></head><body>`,
			templ.EscapeString(title), pageStyle)
		if err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "</body></html>")
		return err
	})
}
