package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/survey-box/app"
	"github.com/mbolis/survey-box/log"
	"github.com/mbolis/survey-box/routes/middlewares"
	"github.com/mbolis/survey-box/session"
)

// largest form body accepted by the HTML endpoints
const maxFormBytes = 1 << 20

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Logger, NoColor: true}),
		middleware.Recoverer,
		middleware.StripSlashes,
	)

	limited := root.With(middleware.RequestSize(maxFormBytes))

	root.Get("/", SurveyForm(app))
	limited.Post("/", SubmitSurvey(app))
	root.Get("/survey", SurveyForm(app))
	limited.Post("/survey", SubmitSurvey(app))
	root.Get("/thank-you", ThankYou(app))

	root.Get("/admin/login", LoginForm(app))
	limited.Post("/admin/login", AdminLogin(app))
	root.
		With(middlewares.RequireFlag(app.Sessions, session.Admin, "/admin/login")).
		Get("/admin", ListResponses(app))
	root.Get("/logout", Logout(app))

	root.Get("/healthz", Health(app))

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		r.Get("/responses", ExportResponses(app))
	})

	return api
}
