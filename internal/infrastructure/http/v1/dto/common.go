// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"stratum/internal/core/entity"
)

// ListResponse wraps list results with paging echo.
type ListResponse struct {
	Items  any `json:"items"`
	Count  int `json:"count"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ArchiveState describes the archive status of an instance.
type ArchiveState struct {
	Archived      bool     `json:"archived"`
	ArchivePoints []string `json:"archivePoints"`
}

// BaseResponse contains fields shared by all entity responses.
type BaseResponse struct {
	ID         string            `json:"id"`
	Version    int               `json:"version"`
	Attributes entity.Attributes `json:"attributes,omitempty"`
	ArchiveState
	Updated time.Time `json:"updated"`
	Created time.Time `json:"created"`
}

// FromIntegrated builds the shared response part from an entity's base.
func FromIntegrated(e *entity.IntegratedEntity) BaseResponse {
	points := e.ArchivePoints
	if points == nil {
		points = []string{}
	}
	return BaseResponse{
		ID:         e.ID.String(),
		Version:    e.Version,
		Attributes: e.Attributes,
		ArchiveState: ArchiveState{
			Archived:      e.Archived,
			ArchivePoints: points,
		},
		Updated: e.Updated,
		Created: e.Created,
	}
}
