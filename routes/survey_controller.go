package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/abellini/survey-front/api"
	"github.com/abellini/survey-front/app"
	"github.com/abellini/survey-front/form"
	"github.com/abellini/survey-front/httpx"
	"github.com/abellini/survey-front/log"
	"github.com/abellini/survey-front/model"
	"github.com/abellini/survey-front/web"
)

type surveyPageData struct {
	Survey model.Survey
	Fields []form.FieldView
	Banner string
}

type errorPageData struct {
	Heading string
	Message string
}

func ShowSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, ok := fetchSurvey(w, r, app, surveyId)
		if !ok {
			return
		}

		fields, err := form.Fields(survey.Questions)
		if err != nil {
			httpx.LogInternalError(w, "get_survey.fields", err)
			return
		}
		st := form.NewState(survey.Questions)

		web.Render(w, http.StatusOK, "survey", web.Page{
			Title: survey.Title,
			User:  pageUser(r),
			Data: surveyPageData{
				Survey: survey,
				Fields: form.Views(fields, st),
			},
		})
	}
}

type submitCheck struct {
	acquire bool
	key     string
	result  chan<- bool
}

func SubmitSurvey(app app.App) http.HandlerFunc {
	// one in-flight submission per session (or per client address when
	// anonymous); a second submit while one is pending never reaches the
	// upstream API
	inflight := make(chan submitCheck)
	go func() {
		pending := make(map[string]bool)

		for req := range inflight {
			if req.acquire {
				req.result <- !pending[req.key]
				pending[req.key] = true
			} else {
				delete(pending, req.key)
			}
		}
	}()

	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		sess, authenticated := sessionFrom(r)
		if !authenticated && !app.AllowAnonymous {
			httpx.LogRedirect(w, r, "submit.anonymous", "/login?goto=/survey/"+surveyId)
			return
		}

		survey, ok := fetchSurvey(w, r, app, surveyId)
		if !ok {
			return
		}

		fields, err := form.Fields(survey.Questions)
		if err != nil {
			httpx.LogInternalError(w, "submit.fields", err)
			return
		}

		err = r.ParseForm()
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "submit.parse_form")
			return
		}

		st := form.NewState(survey.Questions)
		form.BindAll(fields, r.PostForm, st)

		page := func(status int, banner string) {
			web.Render(w, status, "survey", web.Page{
				Title: survey.Title,
				User:  pageUser(r),
				Data: surveyPageData{
					Survey: survey,
					Fields: form.Views(fields, st),
					Banner: banner,
				},
			})
		}

		// required fields block the submission client-side; nothing goes
		// upstream until the whole form passes
		if err := st.Validate(); err != nil {
			log.Debugf("submit.validation: %s", err)
			page(http.StatusUnprocessableEntity, "")
			return
		}

		key := sess.ID
		if !authenticated {
			key = strings.Split(r.RemoteAddr, ":")[0]
		}
		acquired := make(chan bool)
		inflight <- submitCheck{true, key, acquired}
		if !<-acquired {
			log.Debugf("submit.in_flight: %s", key)
			page(http.StatusConflict, "A submission is already in progress")
			return
		}
		defer func() { inflight <- submitCheck{false, key, nil} }()

		sub := form.BuildSubmission(survey, st, !authenticated)
		err = app.SubmitAnswers(r.Context(), sess.Token, surveyId, sub)
		if err != nil {
			var serr *api.StatusError
			if errors.As(err, &serr) && serr.Message != "" {
				log.Debugf("submit.rejected: %s", serr.Message)
				page(http.StatusBadGateway, serr.Message)
				return
			}
			log.Errorf("submit.upstream: %s", err)
			page(http.StatusBadGateway, "Failed to submit survey")
			return
		}

		http.Redirect(w, r, "/survey/success", http.StatusSeeOther)
	}
}

func SurveySuccess(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.Render(w, http.StatusOK, "success", web.Page{
			Title: "Survey submitted",
			User:  pageUser(r),
		})
	}
}

// fetchSurvey loads the survey or renders the terminal error page for this
// page load. There is no retry: a not-found or unreachable upstream leaves
// the user with a message and no form.
func fetchSurvey(w http.ResponseWriter, r *http.Request, app app.App, surveyId string) (model.Survey, bool) {
	sess, _ := sessionFrom(r)

	survey, err := app.FetchSurvey(r.Context(), sess.Token, surveyId)
	switch {
	case errors.Is(err, api.ErrNotFound):
		log.Debugf("get_survey: not found (%s)", surveyId)
		web.Render(w, http.StatusNotFound, "error", web.Page{
			Title: "Survey not found",
			User:  pageUser(r),
			Data: errorPageData{
				Heading: "Survey not found",
				Message: "This survey does not exist or is no longer available.",
			},
		})
		return model.Survey{}, false
	case err != nil:
		log.Errorf("get_survey: %s", err)
		web.Render(w, http.StatusBadGateway, "error", web.Page{
			Title: "Something went wrong",
			User:  pageUser(r),
			Data: errorPageData{
				Heading: "Something went wrong",
				Message: "The survey could not be loaded. Please try again later.",
			},
		})
		return model.Survey{}, false
	}
	return survey, true
}
