package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/require"

	"github.com/abellini/survey-front/api"
	"github.com/abellini/survey-front/app"
	"github.com/abellini/survey-front/config"
	"github.com/abellini/survey-front/database"
)

const testSurveyDoc = `{"data":{
	"title":"Customer Feedback",
	"description":"Tell us how we did",
	"questions":[
		{"_id":"q1","type":"text","question":"Your thoughts","helpText":"Be honest","required":true},
		{"_id":"q2","type":"single-choice","question":"Recommend us?","required":true,
			"options":[{"_id":"o1","option":"Yes","order":1},{"_id":"o2","option":"No","order":2}]},
		{"_id":"q3","type":"multiple-choice","question":"Contact channels","required":false,
			"options":[{"_id":"c1","option":"Email","order":1},{"_id":"c2","option":"Phone","order":2},{"_id":"c3","option":"Chat","order":3}]}
	]}}`

// upstream is a scripted fake of the remote survey API.
type upstream struct {
	*httptest.Server

	mu         sync.Mutex
	writes     int
	lastAuth   string
	lastSubmit []byte

	loginStatus  int
	loginBody    string
	surveyStatus int
	surveyBody   string
	submitStatus int
	submitBody   string
	submitGate   chan struct{} // submit blocks on this when non-nil
}

func newUpstream(t *testing.T) *upstream {
	u := &upstream{
		loginStatus:  http.StatusOK,
		loginBody:    `{"data":{"id":"u1","email":"ada@example.com","name":"Ada","token":"tok123"}}`,
		surveyStatus: http.StatusOK,
		surveyBody:   testSurveyDoc,
		submitStatus: http.StatusOK,
		submitBody:   `{"data":{"ok":true}}`,
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

func (u *upstream) serve(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/auth/user/login" || r.URL.Path == "/auth/user/signup":
		u.mu.Lock()
		u.writes++
		status, body := u.loginStatus, u.loginBody
		u.mu.Unlock()
		w.WriteHeader(status)
		w.Write([]byte(body))

	case strings.HasPrefix(r.URL.Path, "/survey-result/"):
		body, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.writes++
		u.lastAuth = r.Header.Get("Authorization")
		u.lastSubmit = body
		status, respBody, gate := u.submitStatus, u.submitBody, u.submitGate
		u.mu.Unlock()
		if gate != nil {
			<-gate
		}
		w.WriteHeader(status)
		w.Write([]byte(respBody))

	case strings.HasPrefix(r.URL.Path, "/survey/"):
		u.mu.Lock()
		u.lastAuth = r.Header.Get("Authorization")
		status, body := u.surveyStatus, u.surveyBody
		u.mu.Unlock()
		w.WriteHeader(status)
		w.Write([]byte(body))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (u *upstream) writeCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.writes
}

func newTestApp(t *testing.T, u *upstream, allowAnonymous bool) app.App {
	t.Helper()

	store, err := database.Open(config.Config{DBUrl: filepath.Join(t.TempDir(), "sessions.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return app.App{
		Store:  store,
		Client: api.New(u.URL),
		JWT:    jwtauth.New("HS256", []byte("test-secret"), nil),
		Config: config.Config{
			APIBaseURL:     u.URL,
			SessionTTL:     time.Hour,
			AllowAnonymous: allowAnonymous,
		},
	}
}

func postForm(path string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}
