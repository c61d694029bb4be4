package service

import (
	"sort"
	"strings"

	"team-scheduler-api/modules/availability/entity"
)

// SuggestTeammates extracts colleague emails from the requester's recent
// events: attendees on the company domain who are not already in the known
// set. Pure function; output is deduplicated, lowercased and sorted so
// suggestions are stable across calls.
func SuggestTeammates(events []entity.CalendarEvent, known []string, companyDomain string) []string {
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[strings.ToLower(k)] = struct{}{}
	}

	suffix := "@" + strings.ToLower(companyDomain)
	seen := make(map[string]struct{})
	suggestions := make([]string, 0)

	for _, ev := range events {
		for _, att := range ev.Attendees {
			email := strings.ToLower(strings.TrimSpace(att.Email))
			if email == "" {
				continue
			}
			if companyDomain != "" && !strings.HasSuffix(email, suffix) {
				continue
			}
			if _, ok := knownSet[email]; ok {
				continue
			}
			if _, ok := seen[email]; ok {
				continue
			}
			seen[email] = struct{}{}
			suggestions = append(suggestions, email)
		}
	}

	sort.Strings(suggestions)
	return suggestions
}
