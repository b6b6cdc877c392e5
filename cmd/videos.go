package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/filter"
	"github.com/Revanthsudeeep/waterconservation/internal/media"
	"github.com/Revanthsudeeep/waterconservation/internal/validator"
)

func (app *application) listVideosHandler(w http.ResponseWriter, r *http.Request) {
	f := filter.FromQuery(r.URL.Query())

	v := validator.New()
	filter.ValidateFilter(f, v)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	videos, err := app.core.ListVideos(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"videos": filter.Apply(videos, f)}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) showVideoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	video, err := app.core.GetVideo(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	app.doInBackground(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.core.IncrementVideoViews(ctx, video.ID); err != nil {
			app.logger.Warn("failed to count video view", slog.String("video_id", video.ID.String()), slog.String("error", err.Error()))
		}
	})

	data := envelope{
		"video":     video,
		"embed_url": media.EmbedURL(video.VideoURL),
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
