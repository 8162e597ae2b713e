package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/abellini/survey-front/app"
	"github.com/abellini/survey-front/database"
	"github.com/abellini/survey-front/routes/middlewares"
	"github.com/abellini/survey-front/web"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(middlewares.Session(app))

	root.Get("/login", ShowLogin(app))
	root.Post("/login", HandleLogin(app))
	root.Get("/signup", ShowSignup(app))
	root.Post("/signup", HandleSignup(app))
	root.Get("/logout", Logout(app))

	root.Get("/survey/success", SurveySuccess(app))

	// survey-taking; anonymous access is a deployment choice
	root.Group(func(r chi.Router) {
		if !app.AllowAnonymous {
			r.Use(middlewares.RequireUser)
		}
		r.Get("/survey/{id}", ShowSurvey(app))
		r.Post("/survey/{id}", SubmitSurvey(app))
	})

	// every route mounted here inherits the guard
	root.Group(func(r chi.Router) {
		r.Use(middlewares.RequireUser)
		r.Get("/dashboard", Placeholder(app, "Dashboard", "Surveys assigned to you will appear here."))
		r.Get("/profile", Placeholder(app, "Profile", "Your account details."))
		r.Get("/settings", Placeholder(app, "Settings", "Notification and account settings."))
	})

	root.Get("/", Home(app))
	root.Get("/healthz", Health(app))
	root.Handle("/static/*", web.Static())

	return root
}

func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.Ping(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]any{"status": "degraded", "error": err.Error()})
			return
		}
		render.JSON(w, r, map[string]any{"status": "ok"})
	}
}

func Home(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionFrom(r); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func Placeholder(app app.App, heading, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.Render(w, http.StatusOK, "placeholder", web.Page{
			Title: heading,
			User:  pageUser(r),
			Data:  errorPageData{Heading: heading, Message: message},
		})
	}
}

func sessionFrom(r *http.Request) (database.Session, bool) {
	return middlewares.SessionFrom(r.Context())
}

func pageUser(r *http.Request) string {
	sess, ok := sessionFrom(r)
	if !ok {
		return ""
	}
	if sess.Name != "" {
		return sess.Name
	}
	return sess.Email
}
