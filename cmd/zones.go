package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/geo"
	"github.com/Revanthsudeeep/waterconservation/internal/validator"
	"github.com/julienschmidt/httprouter"
)

// listZonesHandler serves the map markers. "all" or an empty value leaves a filter open.
func (app *application) listZonesHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	var q core.ZoneQuery

	if state := strings.TrimSpace(qs.Get("state")); state != "" && state != "all" {
		canonical, ok := geo.CanonicalState(state)
		v.Check(ok, "state", "must be a known state")
		q.State = canonical
	}
	if city := strings.TrimSpace(qs.Get("city")); city != "" && city != "all" {
		q.City = city
	}

	timeRange, err := geo.ParseTimeRange(qs.Get("range"))
	v.Check(err == nil, "range", "must be one of 7days, 30days, 90days or all")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}
	q.Since = timeRange.Since(time.Now())

	records, err := app.core.ListZones(r.Context(), q)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	data := envelope{
		"zones":  geo.NormalizeZones(records, app.logger),
		"center": geo.DefaultCenter,
		"range":  timeRange,
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) listStatesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.writeJSON(w, http.StatusOK, envelope{"states": geo.States}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) listCitiesHandler(w http.ResponseWriter, r *http.Request) {
	state := httprouter.ParamsFromContext(r.Context()).ByName("state")

	canonical, ok := geo.CanonicalState(state)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	data := envelope{"state": canonical, "cities": geo.Cities(canonical)}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) weatherHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	lat, err := app.readFloat(qs, "lat", geo.DefaultCenter[0])
	if err != nil {
		v.AddError("lat", err.Error())
	}
	lon, err := app.readFloat(qs, "lon", geo.DefaultCenter[1])
	if err != nil {
		v.AddError("lon", err.Error())
	}
	v.CheckRange(lat, -90, 90, "lat", "must be between -90 and 90")
	v.CheckRange(lon, -180, 180, "lon", "must be between -180 and 180")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	conditions, err := app.weather.Current(r.Context(), lat, lon)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"weather": conditions}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
