package main

import (
	"errors"
	"net/http"

	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/filter"
	"github.com/Revanthsudeeep/waterconservation/internal/reading"
	"github.com/Revanthsudeeep/waterconservation/internal/validator"
)

func (app *application) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	f := filter.FromQuery(r.URL.Query())

	v := validator.New()
	filter.ValidateFilter(f, v)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	articles, err := app.core.ListArticles(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"articles": filter.Apply(articles, f)}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) showArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	article, err := app.core.GetArticle(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	text, err := reading.PlainText(article.Content)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	data := envelope{
		"article":      article,
		"paragraphs":   reading.Paragraphs(text),
		"read_minutes": reading.ReadMinutes(text),
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// articleProgressHandler reports how far through the article a reader is,
// given the scroll offset and the heights the client measured.
func (app *application) articleProgressHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	qs := r.URL.Query()
	v := validator.New()

	offset, err := app.readFloat(qs, "offset", 0)
	if err != nil {
		v.AddError("offset", err.Error())
	}
	contentHeight, err := app.readFloat(qs, "content_height", 0)
	if err != nil {
		v.AddError("content_height", err.Error())
	}
	viewportHeight, err := app.readFloat(qs, "viewport_height", 0)
	if err != nil {
		v.AddError("viewport_height", err.Error())
	}
	v.Check(contentHeight >= 0, "content_height", "must not be negative")
	v.Check(viewportHeight >= 0, "viewport_height", "must not be negative")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if _, err := app.core.GetArticle(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	progress := reading.Progress(offset, contentHeight, viewportHeight)
	if err := app.writeJSON(w, http.StatusOK, envelope{"progress": progress}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
