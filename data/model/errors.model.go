package model

import (
	"net/http"

	"github.com/seventv/common/errors"
)

var (
	ErrInvalidWindow   = errors.DefineError(20400, "Invalid Time Window", http.StatusBadRequest)
	ErrAccountNotFound = errors.DefineError(20404, "Unknown Account", http.StatusNotFound)

	// Presence source and store failures surface to the poller, never to HTTP clients.
	ErrUpstreamUnavailable = errors.DefineError(30503, "Presence Source Unavailable", http.StatusServiceUnavailable)
	ErrPersistenceFailure  = errors.DefineError(30500, "Persistence Failure", http.StatusInternalServerError)
	ErrAggregationFailed   = errors.DefineError(40500, "Aggregation Failed", http.StatusInternalServerError)
)
