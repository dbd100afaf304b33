package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAdjustmentReviewed = "adjustment.reviewed"
	EventTypeTimeOffReviewed    = "timeoff.reviewed"
	EventTypeLeaveAccrued       = "leave.accrued"
	EventTypeUserDeactivated    = "user.deactivated"
)

// Publisher is what domain services need from the bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// RequestReviewedEvent is emitted when HR approves or rejects an adjustment or time-off request.
type RequestReviewedEvent struct {
	BaseEvent
	RequestID  string `json:"request_id"`
	OwnerID    string `json:"owner_id"`
	ReviewerID string `json:"reviewer_id"`
	Status     string `json:"status"`
	Comment    string `json:"comment"`
}

func newRequestReviewedEvent(eventType, requestID, ownerID, reviewerID, status, comment string) *RequestReviewedEvent {
	return &RequestReviewedEvent{
		BaseEvent: newBase(eventType, map[string]interface{}{
			"request_id":  requestID,
			"owner_id":    ownerID,
			"reviewer_id": reviewerID,
			"status":      status,
			"comment":     comment,
		}),
		RequestID:  requestID,
		OwnerID:    ownerID,
		ReviewerID: reviewerID,
		Status:     status,
		Comment:    comment,
	}
}

func NewAdjustmentReviewedEvent(requestID, ownerID, reviewerID, status, comment string) *RequestReviewedEvent {
	return newRequestReviewedEvent(EventTypeAdjustmentReviewed, requestID, ownerID, reviewerID, status, comment)
}

func NewTimeOffReviewedEvent(requestID, ownerID, reviewerID, status, comment string) *RequestReviewedEvent {
	return newRequestReviewedEvent(EventTypeTimeOffReviewed, requestID, ownerID, reviewerID, status, comment)
}

type LeaveAccruedEvent struct {
	BaseEvent
	UserID        string  `json:"user_id"`
	LeaveType     string  `json:"leave_type"`
	Year          int     `json:"year"`
	RemainingDays float64 `json:"remaining_days"`
}

func NewLeaveAccruedEvent(userID, leaveType string, year int, remaining float64) *LeaveAccruedEvent {
	return &LeaveAccruedEvent{
		BaseEvent: newBase(EventTypeLeaveAccrued, map[string]interface{}{
			"user_id":        userID,
			"leave_type":     leaveType,
			"year":           year,
			"remaining_days": remaining,
		}),
		UserID:        userID,
		LeaveType:     leaveType,
		Year:          year,
		RemainingDays: remaining,
	}
}

type UserDeactivatedEvent struct {
	BaseEvent
	UserID  string `json:"user_id"`
	ActorID string `json:"actor_id"`
}

func NewUserDeactivatedEvent(userID, actorID string) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseEvent: newBase(EventTypeUserDeactivated, map[string]interface{}{
			"user_id":  userID,
			"actor_id": actorID,
		}),
		UserID:  userID,
		ActorID: actorID,
	}
}
