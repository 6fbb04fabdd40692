package httpapi

import "errors"

// ErrMissingRetrievalService is returned when the server has nothing to serve.
var ErrMissingRetrievalService = errors.New("retrieval service is required")
