package api

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail, code string) {
	writeJSON(w, status, errorResponse{Detail: detail, Code: code})
}

// writeError maps err to a status via its code. Server-side failures are
// prefixed with failure when given; the cause chain is never exposed.
func writeError(w http.ResponseWriter, err error, failure string) {
	status := mmerrors.HTTPStatus(err)
	detail := mmerrors.UserMessage(err)
	if status >= http.StatusInternalServerError && failure != "" {
		detail = failure + ": " + detail
	}
	code := string(mmerrors.GetCode(err))
	if code == "" {
		code = string(mmerrors.ErrCodeInternal)
	}
	writeDetail(w, status, detail, code)
}
