package middlewares

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/jwtauth"
	"github.com/pkg/errors"

	"github.com/abellini/survey-front/app"
	"github.com/abellini/survey-front/database"
	"github.com/abellini/survey-front/httpx"
)

type contextKey int

const sessionKey contextKey = iota

// Session verifies the signed session cookie and, when it names a live
// session row, puts that session on the request context. Requests without a
// valid cookie proceed as anonymous; route protection is RequireUser's job.
func Session(app app.App) func(http.Handler) http.Handler {
	verify := jwtauth.Verify(app.JWT, jwtauth.TokenFromCookie)
	return func(next http.Handler) http.Handler {
		return verify(loadSession(app)(next))
	}
}

func loadSession(app app.App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				// missing, malformed or expired cookie: anonymous
				next.ServeHTTP(w, r)
				return
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := app.GetSession(r.Context(), sid)
			switch {
			case errors.Is(err, database.ErrNoSession):
				next.ServeHTTP(w, r)
				return
			case err != nil:
				httpx.LogInternalError(w, "session.load", err)
				return
			case sess.Expired():
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser guards a route group: anonymous requests are sent to the
// sign-in page, carrying the original path so login can come back to it.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFrom(r.Context()); !ok {
			location := "/login?goto=" + url.QueryEscape(r.RequestURI)
			httpx.LogRedirect(w, r, "auth.anonymous", location)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func SessionFrom(ctx context.Context) (database.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(database.Session)
	return sess, ok
}
