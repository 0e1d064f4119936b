package catalog

import "strings"

// ParseGenres splits a comma-separated tag list as typed into the admin form,
// trimming whitespace and dropping empty entries.
func ParseGenres(s string) []string {
	parts := strings.Split(s, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}
