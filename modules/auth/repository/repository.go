package repository

import (
	"team-scheduler-api/core/database"
)

// AuthRepository handles user and credential persistence.
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}
