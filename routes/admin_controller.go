package routes

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/survey-box/app"
	"github.com/mbolis/survey-box/httpx"
	"github.com/mbolis/survey-box/views"
)

// ListResponses renders every stored response. Rows are read again on
// every request.
func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.Responses.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}

		err = views.Render(w, r, "admin.html", responses)
		if err != nil {
			httpx.LogInternalError(w, "view.admin", err)
		}
	}
}

func ExportResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.Responses.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}
