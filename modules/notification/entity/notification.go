package entity

import (
	coreEntity "team-scheduler-api/core/entity"
)

// Notification types
const (
	TypeMeetingConfirmation = "meeting_confirmation"
)

// Notification is an in-app message addressed to a participant email, so it
// reaches teammates who have not signed in yet.
type Notification struct {
	coreEntity.BaseEntity
	UserEmail string  `db:"user_email" json:"userEmail"`
	Type      string  `db:"type" json:"type"`
	Title     string  `db:"title" json:"title"`
	Body      string  `db:"body" json:"body"`
	Reference *string `db:"reference" json:"reference,omitempty"`
	Read      bool    `db:"read" json:"read"`
}

type PaginatedNotificationEntity = coreEntity.Pagination[Notification]
