package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fansite-cms/api/internal/middleware"
	"github.com/fansite-cms/api/internal/model"
	"github.com/fansite-cms/api/internal/service"
	"github.com/fansite-cms/api/internal/upload"
)

// MapServiceError converts an error from the service or upload layer into
// the failure envelope the client sees. Anything unrecognized is a 500 with
// a generic message.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	var validation *service.ValidationError
	var badBody *badBodyError
	var maxErr *http.MaxBytesError

	switch {
	// ===== Validation → 400 =====
	case errors.As(err, &validation):
		return model.NewValidationError(validation.Fields)
	case errors.As(err, &badBody):
		return model.NewBadRequestError(badBody.msg)
	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrRangeTooLarge):
		return model.NewBadRequestError(err.Error())

	// ===== Not Found → 404 =====
	case errors.Is(err, service.ErrAlbumNotFound):
		return model.NewNotFoundError("album")
	case errors.Is(err, service.ErrGalleryImageNotFound):
		return model.NewNotFoundError("gallery image")
	case errors.Is(err, service.ErrNoticeNotFound):
		return model.NewNotFoundError("notice")
	case errors.Is(err, service.ErrScheduleNotFound):
		return model.NewNotFoundError("schedule event")
	case errors.Is(err, service.ErrVideoNotFound):
		return model.NewNotFoundError("video")
	case errors.Is(err, service.ErrMemberNotFound):
		return model.NewNotFoundError("member")

	// ===== Authentication → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(loginFailedMessage)
	case errors.Is(err, service.ErrUnauthorized):
		return model.NewUnauthorizedError("")

	// ===== Uploads =====
	case errors.As(err, &maxErr),
		errors.Is(err, upload.ErrFileTooLarge),
		errors.Is(err, upload.ErrTotalTooLarge):
		return model.NewPayloadTooLargeError(uploadMessage(err))
	case errors.Is(err, upload.ErrNotMultipart):
		return model.NewBadRequestError("request must be multipart/form-data")
	case errors.Is(err, upload.ErrUnsupportedType),
		errors.Is(err, upload.ErrTooManyFiles),
		errors.Is(err, upload.ErrEmptyFile),
		errors.Is(err, service.ErrNoFiles),
		errors.Is(err, service.ErrTooManyImages):
		return model.NewBadRequestError(err.Error())
	}

	return model.NewInternalError("")
}

func uploadMessage(err error) string {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "request body too large"
	}
	return err.Error()
}

// handleError writes the mapped failure envelope. Server-side failures are
// logged with the request id; the client only sees the generic message.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := MapServiceError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
	}
	WriteError(w, apiErr)
}
