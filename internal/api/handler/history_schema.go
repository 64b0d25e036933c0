package handler

import (
	"encoding/json"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type addHistoryRequest struct {
	IPAddress string `json:"ipAddress" validate:"required"`
	// Location is any JSON value; it is serialized and stored opaque, the
	// client re-parses it on read.
	Location json.RawMessage `json:"location" validate:"required"`
}

type deleteHistoriesRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type listHistoriesResponse struct {
	Histories []*domain.History `json:"histories"`
}

type addHistoryResponse struct {
	Message string          `json:"message"`
	History *domain.History `json:"history"`
}

type deleteHistoriesResponse struct {
	Message string `json:"message"`
}
