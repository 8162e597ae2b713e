// Package api is the HTTP/JSON client of the remote survey service. Every
// authenticated call takes the bearer token as an explicit argument; the
// client itself holds no credential state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/abellini/survey-front/model"
)

var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx response whose body carried a message. The
// message is shown to the user verbatim when present.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Code)
}

type Client struct {
	base   string
	client *http.Client

	// collapses concurrent reads of the same survey id
	fetch singleflight.Group
}

func New(baseURL string) *Client {
	return &Client{
		base:   baseURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// dataEnvelope is the server's standard `{"data": ...}` response wrapper.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	body := map[string]string{"email": email, "password": password}

	var out dataEnvelope[model.User]
	err := c.do(ctx, http.MethodPost, "/auth/user/login", "", body, &out)
	if err != nil {
		return model.User{}, err
	}
	return out.Data, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (model.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var out dataEnvelope[model.User]
	err := c.do(ctx, http.MethodPost, "/auth/user/signup", "", body, &out)
	if err != nil {
		return model.User{}, err
	}
	return out.Data, nil
}

// FetchSurvey reads a survey by id. Concurrent fetches for the same id are
// collapsed into one upstream request; the survey document is validated
// before it is returned, so callers never see an unknown question type or a
// choice question without options.
func (c *Client) FetchSurvey(ctx context.Context, token, id string) (model.Survey, error) {
	v, err, _ := c.fetch.Do(id, func() (any, error) {
		var out dataEnvelope[model.Survey]
		err := c.do(ctx, http.MethodGet, "/survey/"+id, token, nil, &out)
		if err != nil {
			return model.Survey{}, err
		}
		if err := out.Data.Validate(); err != nil {
			return model.Survey{}, errors.Wrap(err, "invalid survey document")
		}
		if out.Data.ID == "" {
			out.Data.ID = id
		}
		return out.Data, nil
	})
	if err != nil {
		return model.Survey{}, err
	}
	return v.(model.Survey), nil
}

func (c *Client) SubmitAnswers(ctx context.Context, token, surveyID string, sub model.Submission) error {
	return c.do(ctx, http.MethodPost, "/survey-result/"+surveyID, token, sub, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return errors.Wrapf(err, "decode %s %s response", method, path)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	serr := &StatusError{Code: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && json.Unmarshal(raw, &body) == nil {
		serr.Message = body.Message
	}
	return serr
}
