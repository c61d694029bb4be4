package entity

import (
	"team-scheduler-api/core/entity"
)

// User is a person known to the scheduler. Rows are created on first Google
// sign-in, or pre-provisioned by a teammate registering their email.
type User struct {
	entity.BaseEntity
	Email    string  `db:"email" json:"email"`
	Name     *string `db:"name" json:"name,omitempty"`
	Domain   *string `db:"domain" json:"domain,omitempty"`
	ImageURL *string `db:"image_url" json:"image_url,omitempty"`
}

type PaginatedUserEntity = entity.Pagination[User]
