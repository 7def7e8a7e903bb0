package response

import (
	"encoding/json"
	"net/http"

	"taskboard/shared/constant"
	"taskboard/shared/failure"
	"taskboard/shared/logger"
)

// WithText sends a plain text body.
func WithText(writer http.ResponseWriter, code int, message string) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePlainText)
	writer.WriteHeader(code)

	if _, err := writer.Write([]byte(message)); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithJSON sends payload encoded as JSON, without an envelope.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		WithText(writer, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithError sends client errors with their own message. Any other error is
// answered with a 500 and the fixed fallback text; its detail stays in the logs.
func WithError(writer http.ResponseWriter, err error, fallback string) {
	if failure.IsClientError(err) {
		WithText(writer, failure.GetCode(err), err.Error())

		return
	}

	WithText(writer, http.StatusInternalServerError, fallback)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithText(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithText(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}
