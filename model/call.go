package model

import "time"

// CallEntity represents one logged call between two users
type CallEntity struct {
	ID            uint64     `db:"id" json:"id"`
	CallerID      uint64     `db:"caller_id" json:"caller_id"`
	ReceiverID    uint64     `db:"receiver_id" json:"receiver_id"`
	CallStartTime time.Time  `db:"call_start_time" json:"call_start_time"`
	CallEndTime   *time.Time `db:"call_end_time" json:"call_end_time,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// CreateCallRequest for logging a new call
type CreateCallRequest struct {
	CallerID      uint64    `json:"caller_id" validate:"required"`
	ReceiverID    uint64    `json:"receiver_id" validate:"required"`
	CallStartTime time.Time `json:"call_start_time" validate:"required"`
}

// UpdateCallRequest closes a call; the end time is the only mutable field
type UpdateCallRequest struct {
	CallEndTime *time.Time `json:"call_end_time"`
}

func (r *UpdateCallRequest) IsEmpty() bool {
	return r.CallEndTime == nil
}
