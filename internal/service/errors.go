package service

import (
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

var errUnauthenticated = errors.New("authentication required")

// invalidArgument builds a CodeInvalidArgument error for a malformed request.
func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// toConnectError maps storage and engine errors to connect codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case models.IsInputError(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, errUnauthenticated):
		return connect.NewError(connect.CodeUnauthenticated, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// errorKind labels an engine error for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidDebt):
		return "invalid_debt"
	case errors.Is(err, models.ErrUnbalancedGraph):
		return "unbalanced_graph"
	case errors.Is(err, models.ErrMissingExchangeRate):
		return "missing_exchange_rate"
	case errors.Is(err, models.ErrUnknownAlgorithm):
		return "unknown_algorithm"
	case errors.Is(err, models.ErrInvalidFriendship):
		return "invalid_friendship"
	case errors.Is(err, models.ErrInvalidExchangeRate):
		return "invalid_exchange_rate"
	case errors.Is(err, models.ErrInvalidCurrency):
		return "invalid_currency"
	case errors.Is(err, models.ErrConservation):
		return "conservation"
	default:
		return "other"
	}
}

// engineError records a rejected computation and maps it for the caller.
// A conservation failure is a bug in a strategy, so it is logged loudly.
func engineError(op, groupID string, err error) *connect.Error {
	kind := errorKind(err)
	metrics.EngineErrors.WithLabelValues(kind).Inc()
	if kind == "conservation" || kind == "other" {
		slog.Error(op+" failed", "group_id", groupID, "kind", kind, "error", err)
	} else {
		slog.Warn(op+" rejected", "group_id", groupID, "kind", kind, "error", err)
	}
	return toConnectError(err)
}
