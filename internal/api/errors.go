package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MsgRouteNotFound is returned for any route or method the router does not serve.
const MsgRouteNotFound = "requested resource not found"

// storeCodeKinds maps storage failure codes to error kinds. It is the only
// place store codes are interpreted.
var storeCodeKinds = map[store.Code]apperr.Kind{
	store.CodeCast:         apperr.KindBadRequest,
	store.CodeValidation:   apperr.KindBadRequest,
	store.CodeDuplicateKey: apperr.KindConflict,
}

// NormalizeError classifies any failure into exactly one error kind with a
// client-safe message. Coded store failures win over application errors;
// anything unrecognized becomes an internal error with a generic message.
func NormalizeError(err error) *apperr.Error {
	if err == nil {
		return nil
	}

	if storeErr, ok := store.AsError(err); ok {
		if kind, known := storeCodeKinds[storeErr.Code]; known {
			return apperr.Wrap(kind, storeErrorMessage(storeErr), err)
		}
	}

	if appErr, ok := apperr.As(err); ok {
		return appErr
	}

	return apperr.Wrap(apperr.KindInternal, apperr.MsgInternal, err)
}

func storeErrorMessage(e *store.Error) string {
	switch e.Code {
	case store.CodeCast:
		return fmt.Sprintf("Invalid %s id", entityName(e.Entity))
	case store.CodeValidation:
		if e.Field == "" {
			return fmt.Sprintf("Invalid %s data", entityName(e.Entity))
		}
		return fmt.Sprintf("Invalid %s data: %s", entityName(e.Entity), e.Field)
	case store.CodeDuplicateKey:
		if e.Entity == store.EntityUser && e.Field == "email" {
			return fmt.Sprintf("email %s is already in use", e.Value)
		}
		if e.Value != "" {
			return fmt.Sprintf("%s %s already exists", entityName(e.Entity), e.Value)
		}
		return apperr.MsgConflict
	default:
		return apperr.MsgBadRequest
	}
}

func entityName(entity string) string {
	if entity == "" {
		return "resource"
	}
	return entity
}

// HandleAPIError normalizes err and writes the error response. Handlers and
// middleware never write error bodies themselves.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := NormalizeError(err)
	if appErr == nil {
		appErr = apperr.Internal("")
	}

	var opts []shared.ResponseOption
	if appErr.Kind == apperr.KindUnauthorized || appErr.Kind == apperr.KindForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, appErr.StatusCode(), appErr.Message, err, opts...)
}

// NotFoundHandler answers unmatched routes and methods.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	HandleAPIError(w, r, apperr.NotFound(MsgRouteNotFound))
}
