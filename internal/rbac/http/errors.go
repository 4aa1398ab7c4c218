package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/aussiebroadwan/rbac/internal/rbac/apperror"
	"github.com/aussiebroadwan/rbac/pkg/httpx"
	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
	"github.com/aussiebroadwan/rbac/pkg/slogx"
)

// writeError maps err to a status and an ErrorResponse. Internal causes
// are logged here and never written.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal(err)
	}

	status, code := statusFor(appErr.Kind)
	resp := rbacsdk.ErrorResponse{
		Code:    code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
	if appErr.Kind != apperror.KindValidation && appErr.Kind != apperror.KindInternal && appErr.Code != "" {
		resp.Details = map[string]string{"reason": appErr.Code}
	}

	if status >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("code", appErr.Code),
			slog.Any("error", appErr.Inner),
		)
	}

	httpx.WriteJSON(w, status, resp)
}

func statusFor(kind apperror.Kind) (int, string) {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest, rbacsdk.ErrorCodeValidation
	case apperror.KindConflict:
		// Conflicts stay on 400 for compatibility with existing clients.
		return http.StatusBadRequest, rbacsdk.ErrorCodeConflict
	case apperror.KindNotFound:
		return http.StatusNotFound, rbacsdk.ErrorCodeNotFound
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized, rbacsdk.ErrorCodeInvalidCredentials
	default:
		return http.StatusInternalServerError, rbacsdk.ErrorCodeInternal
	}
}

// decodeJSON decodes the body into v. An empty body decodes as {}. Type
// mismatches become field-level validation errors.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var (
		typeErr *json.UnmarshalTypeError
		maxErr  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxErr):
		return apperror.Validation("request body too large", nil)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperror.Validation("invalid field type", map[string]string{
			typeErr.Field: "must be " + describeType(typeErr.Type),
		})
	}
	return apperror.Validation("request body must be a JSON object", nil)
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	default:
		return "a " + t.String()
	}
}
