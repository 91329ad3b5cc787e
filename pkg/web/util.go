package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

var errUndecodable = errors.New("request body is not valid JSON")

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding json", "err", err)
	}
}

func renderOK(w http.ResponseWriter) {
	renderJSON(w, http.StatusOK, api.OK{OK: true})
}

func renderDetail(w http.ResponseWriter, statusCode int, detail string) {
	if statusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	renderJSON(w, statusCode, api.Error{Detail: detail})
}

func renderNotFound(w http.ResponseWriter, _ *http.Request) {
	renderDetail(w, http.StatusNotFound, "Not Found")
}

func renderMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	renderDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// statusCode maps an error to the HTTP status it is reported with.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errUndecodable):
		return http.StatusUnprocessableEntity
	case proto.IsNotFound(err):
		return http.StatusNotFound
	case proto.IsUnauthenticated(err):
		return http.StatusUnauthorized
	case errors.Is(err, proto.ErrForbidden):
		return http.StatusForbidden
	case proto.IsConflict(err), proto.IsBadRequest(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// renderError writes err with the status it maps to. Unclassified errors are
// logged and reported without their message.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
		renderDetail(w, code, http.StatusText(code))
		return
	}
	renderDetail(w, code, err.Error())
}

// decode reads a JSON body into v.
func decode(r *http.Request, v interface{}) error {
	defer r.Body.Close() // nolint: errcheck
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errUndecodable, err)
	}
	return nil
}

// pathID returns the numeric route variable name. Routes only match digits,
// so a parse failure means the value overflows.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, proto.NewValidationError(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// pageParams reads the page and per_page query parameters. Missing or
// malformed values fall back to the defaults.
func pageParams(r *http.Request) backend.Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	per, _ := strconv.Atoi(q.Get("per_page"))
	return backend.Page{Page: page, PerPage: per}
}
