package main

import (
	"net/http"
)

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	missing, err := app.core.CheckTables(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	status := "available"
	if len(missing) > 0 {
		status = "degraded"
		app.logger.Warn("required tables are missing", "tables", missing)
	}

	data := envelope{
		"status": status,
		"system_info": map[string]string{
			"environment": app.config.Env,
			"version":     app.config.Version,
		},
		"missing_tables": missing,
	}

	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
