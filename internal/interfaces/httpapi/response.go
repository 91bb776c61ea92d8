package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/bracket-pool/internal/domain/admin"
	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
	"github.com/riskibarqy/bracket-pool/internal/usecase"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, errorResponse{
		Error:  err.Error(),
		Reason: mapped.Reason,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{
		Error:  "internal server error",
		Reason: "internalError",
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrEntriesClosed):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "entriesClosed",
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
		}
	case errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, entry.ErrNotFound),
		errors.Is(err, bracket.ErrNotFound),
		errors.Is(err, admin.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
		}
	case errors.Is(err, entry.ErrNoSelections),
		errors.Is(err, entry.ErrBudgetMismatch),
		errors.Is(err, entry.ErrUnknownTeam),
		errors.Is(err, entry.ErrDuplicateTeam),
		errors.Is(err, entry.ErrInvalidSelection),
		errors.Is(err, entry.ErrMissingEntryField):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidEntry",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
		}
	}
}
