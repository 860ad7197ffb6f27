package model

import "time"

// ConvocationEntity represents the convocation table entity
type ConvocationEntity struct {
	ID          uint64     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	StartDate   Date       `db:"start_date" json:"start_date"`
	EndDate     Date       `db:"end_date" json:"end_date"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CreateConvocationRequest for creating a convocation
type CreateConvocationRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=200"`
	Description string `json:"description" validate:"required,min=10"`
	StartDate   Date   `json:"start_date" validate:"required"`
	EndDate     Date   `json:"end_date" validate:"required"`
}

// UpdateConvocationRequest carries a merge-patch: only non-nil fields are applied
type UpdateConvocationRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=5,max=200"`
	Description *string `json:"description" validate:"omitempty,min=10"`
	StartDate   *Date   `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (r *UpdateConvocationRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.StartDate == nil && r.EndDate == nil
}
