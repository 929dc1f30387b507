package patreonapi

import (
	"net/http"
	"strconv"
	"strings"

	"emperror.dev/errors"
)

// ErrorResponse is the JSON:API error document Patreon sends with non-2xx responses.
type ErrorResponse struct {
	Errors []*APIError `json:"errors"`
}

type APIError struct {
	Code     int    `json:"code"`
	CodeName string `json:"code_name"`
	Status   string `json:"status"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
}

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string

	// APIError is the first error of the response document, nil if the body
	// was not a JSON:API error document.
	APIError *APIError
	Body     string
}

func (e *StatusError) Error() string {
	msg := "patreonapi: " + e.Method + " " + e.Path + ": bad response code " + e.Status
	if e.APIError != nil {
		detail := e.APIError.Title
		if e.APIError.Detail != "" {
			detail += ": " + e.APIError.Detail
		}
		return msg + ": " + detail
	}

	if e.Body != "" {
		return msg + ": " + e.Body
	}

	return msg
}

// Details exposes the response status to errors.GetDetails, so loggers and
// error reporters can pick it up without knowing this type.
func (e *StatusError) Details() []interface{} {
	return []interface{}{"status_code", e.StatusCode, "path", e.Path}
}

func newStatusError(req *http.Request, resp *http.Response, body []byte) *StatusError {
	status := resp.Status
	if status == "" {
		status = strconv.Itoa(resp.StatusCode) + " " + http.StatusText(resp.StatusCode)
	}

	e := &StatusError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: resp.StatusCode,
		Status:     status,
	}

	var doc ErrorResponse
	if json.Unmarshal(body, &doc) == nil && len(doc.Errors) > 0 && doc.Errors[0] != nil {
		e.APIError = doc.Errors[0]
		return e
	}

	// keep log lines readable if an html error page comes back
	bodyStr := strings.TrimSpace(string(body))
	if len(bodyStr) > 200 {
		bodyStr = bodyStr[:200] + "..."
	}
	e.Body = bodyStr

	return e
}

// IsUnauthorized reports whether err is a 401 from the API, which means the
// access token is invalid or expired.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}
