package dto

import coreDto "team-scheduler-api/core/dto"

// TeammateResponse is one directory entry. Connected reports whether the
// teammate has authorized calendar access, i.e. whether they can appear in an
// availability search without failing it.
type TeammateResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name,omitempty"`
	Connected bool    `json:"connected"`
}

type PaginatedTeammates = coreDto.Pagination[TeammateResponse]

// AddTeammateRequest pre-provisions a teammate by email so they show up in
// the directory before their first sign-in.
type AddTeammateRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
