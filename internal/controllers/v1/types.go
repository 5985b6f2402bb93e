package v1

import (
	ct_uuid "github.com/centavo-app/backend/internal/uuid"
)

type URIID struct {
	ID ct_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month string `form:"month" example:"2025-08"` // Year and month in YYYY-MM format
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
