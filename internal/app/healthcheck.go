package app

import (
	"net/http"

	"github.com/orosun/leadpay/api"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	systemInfo := api.SystemInfo{
		Version:     version,
		Environment: app.config.Env,
	}

	resp := api.HealthcheckResponse{
		Status:     status,
		SystemInfo: systemInfo,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetOpenAPISpec serves the API description the handlers implement.
func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if app.spec == nil {
		app.notFoundResponse(w, r)
		return
	}

	err := app.writeJSON(w, http.StatusOK, app.spec, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
