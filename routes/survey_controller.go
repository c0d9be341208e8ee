package routes

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/survey-box/app"
	"github.com/mbolis/survey-box/httpx"
	"github.com/mbolis/survey-box/log"
	"github.com/mbolis/survey-box/views"
)

func SurveyForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := views.Render(w, r, "survey.html", nil)
		if err != nil {
			httpx.LogInternalError(w, "view.survey", err)
		}
	}
}

// SubmitSurvey stores the two answers. Absent fields are stored as empty
// strings rather than rejected, but a body that cannot be parsed is.
func SubmitSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.ParseForm(w, r, "survey.parse_form") {
			return
		}
		q1 := r.PostForm.Get("q1")
		q2 := r.PostForm.Get("q2")

		_, err := app.Responses.Insert(r.Context(), q1, q2)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		http.Redirect(w, r, "/thank-you", http.StatusFound)
	}
}

func ThankYou(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "Thanks for your response!")
	}
}

func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.DB.PingContext(r.Context())
		if err != nil {
			httpx.LogStatus(w, http.StatusServiceUnavailable, log.WarnLevel, "health.db_ping: "+err.Error())
			return
		}
		render.PlainText(w, r, "ok")
	}
}
