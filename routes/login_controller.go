package routes

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/abellini/survey-front/api"
	"github.com/abellini/survey-front/app"
	"github.com/abellini/survey-front/database"
	"github.com/abellini/survey-front/httpx"
	"github.com/abellini/survey-front/log"
	"github.com/abellini/survey-front/model"
	"github.com/abellini/survey-front/web"
)

var validate = validator.New()

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type signupForm struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type authPageData struct {
	Name   string
	Email  string
	Goto   string
	Banner string
	Errors map[string]string
}

func ShowLogin(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := authPageData{Goto: safePath(r.URL.Query().Get("goto"))}
		web.Render(w, http.StatusOK, "login", web.Page{Title: "Sign in", User: pageUser(r), Data: data})
	}
}

func HandleLogin(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "login.parse_form")
			return
		}

		form := loginForm{
			Email:    strings.TrimSpace(r.PostFormValue("email")),
			Password: r.PostFormValue("password"),
		}
		data := authPageData{
			Email: form.Email,
			Goto:  safePath(r.PostFormValue("goto")),
		}

		data.Errors = formErrors(validate.Struct(form))
		if len(data.Errors) > 0 {
			web.Render(w, http.StatusUnprocessableEntity, "login", web.Page{Title: "Sign in", Data: data})
			return
		}

		user, err := app.Login(r.Context(), form.Email, form.Password)
		if err != nil {
			var serr *api.StatusError
			if errors.As(err, &serr) || errors.Is(err, api.ErrNotFound) {
				log.Debugf("login.rejected: %s", form.Email)
				data.Banner = "Invalid email or password"
				web.Render(w, http.StatusUnauthorized, "login", web.Page{Title: "Sign in", Data: data})
				return
			}
			log.Errorf("login.upstream: %s", err)
			data.Banner = "Could not sign in right now, please try again later"
			web.Render(w, http.StatusBadGateway, "login", web.Page{Title: "Sign in", Data: data})
			return
		}

		err = openSession(w, r, app, user)
		if err != nil {
			httpx.LogInternalError(w, "login.session", err)
			return
		}

		location := data.Goto
		if location == "" {
			location = "/dashboard"
		}
		http.Redirect(w, r, location, http.StatusSeeOther)
	}
}

func ShowSignup(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.Render(w, http.StatusOK, "signup", web.Page{Title: "Sign up", User: pageUser(r), Data: authPageData{}})
	}
}

func HandleSignup(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "signup.parse_form")
			return
		}

		form := signupForm{
			Name:     strings.TrimSpace(r.PostFormValue("name")),
			Email:    strings.TrimSpace(r.PostFormValue("email")),
			Password: r.PostFormValue("password"),
		}
		data := authPageData{Name: form.Name, Email: form.Email}

		data.Errors = formErrors(validate.Struct(form))
		if len(data.Errors) > 0 {
			web.Render(w, http.StatusUnprocessableEntity, "signup", web.Page{Title: "Sign up", Data: data})
			return
		}

		_, err = app.Signup(r.Context(), form.Name, form.Email, form.Password)
		if err != nil {
			var serr *api.StatusError
			if errors.As(err, &serr) && serr.Message != "" {
				data.Banner = serr.Message
			} else {
				log.Errorf("signup.upstream: %s", err)
				data.Banner = "Could not sign up right now, please try again later"
			}
			web.Render(w, http.StatusBadGateway, "signup", web.Page{Title: "Sign up", Data: data})
			return
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func Logout(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := sessionFrom(r); ok {
			err := app.DeleteSession(r.Context(), sess.ID)
			if err != nil {
				log.Warnf("logout.delete_session: %s", err)
			}
		}
		clearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// openSession stores the upstream token server-side and hands the browser a
// signed cookie naming the session row. The token itself never leaves the
// process.
func openSession(w http.ResponseWriter, r *http.Request, app app.App, user model.User) error {
	sid, err := uuid.NewV4()
	if err != nil {
		return errors.Wrap(err, "session id")
	}

	sess := database.Session{
		ID:     sid.String(),
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Token:  user.Token,
		Expiry: time.Now().Add(app.SessionTTL),
	}
	err = app.CreateSession(r.Context(), sess)
	if err != nil {
		return err
	}

	claims := map[string]any{"sid": sess.ID}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, app.SessionTTL)
	_, token, err := app.JWT.Encode(claims)
	if err != nil {
		return errors.Wrap(err, "encode session token")
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "jwt",
		Value:    token,
		MaxAge:   int(app.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "jwt",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func safePath(p string) string {
	// relative paths only, to keep the goto parameter from becoming an
	// open redirect
	if strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") {
		return p
	}
	return ""
}

func formErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	msgs := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgs
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs[fe.Field()] = "This field is required"
		case "email":
			msgs[fe.Field()] = "Invalid email address"
		case "min":
			msgs[fe.Field()] = fmt.Sprintf("Must be at least %s characters", fe.Param())
		default:
			msgs[fe.Field()] = "Invalid value"
		}
	}
	return msgs
}
