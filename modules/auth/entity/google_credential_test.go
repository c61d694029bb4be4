package entity

import (
	"testing"
	"time"
)

func TestCredentialUsable(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	buffer := 300 * time.Second

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry recorded", nil, true},
		{"expires in an hour", ptr(now.Add(time.Hour)), true},
		{"expires just past the buffer", ptr(now.Add(301 * time.Second)), true},
		{"expires exactly at the buffer", ptr(now.Add(300 * time.Second)), false},
		{"expires inside the buffer", ptr(now.Add(200 * time.Second)), false},
		{"already expired", ptr(now.Add(-time.Minute)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := GoogleCredential{ExpiresAt: tt.expiresAt}
			if got := cred.Usable(now, buffer); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }
