package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/tracing"
	"github.com/bchege/wellspring_api/util/values"
)

// hideErrorDetail suppresses unexpected-error detail in responses; set
// from config by API.Init.
var hideErrorDetail bool

// ServerResponse is the envelope every handler returns. Status is
// "success" for 2xx results and "error" otherwise; StatusCode and
// EntityID never serialize.
type ServerResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"-"`
	EntityID   string      `json:"-"`
}

// respondWithError logs the underlying error with the tracing context
// and returns the error envelope for the given status kind. Operational
// errors keep their stable message; unexpected (500) detail is exposed
// only outside production.
func respondWithError(err error, message, status string, tc *tracing.Context) *ServerResponse {
	if err != nil {
		if tc != nil {
			log.Printf("[%s][%s] %s: %v", tc.RequestSource, tc.RequestID, message, err)
		} else {
			log.Printf("%s: %v", message, err)
		}
	}

	code := util.StatusCode(status)
	if code == http.StatusInternalServerError {
		if hideErrorDetail {
			message = values.SystemErr
		} else if err != nil {
			message = message + ": " + err.Error()
		}
	}

	return &ServerResponse{
		Status:     values.Error,
		Message:    message,
		StatusCode: code,
	}
}

func writeErrorResponse(w http.ResponseWriter, err error, status, message string) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}

	resp := ServerResponse{
		Status:  values.Error,
		Message: message,
	}
	respByte, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, respByte, util.StatusCode(status))
}

// errValue wraps a stable operational failure reason as an error so
// helpers always pair a non-success status with a non-nil error.
func errValue(reason string) error {
	return errors.New(reason)
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Println("unable to write response body", err)
	}
}
