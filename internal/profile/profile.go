package profile

import "strings"

// Profile is what the matching and search layers know about a candidate.
// Skills carries the merged technical skills, languages and tools in the
// order they were first seen, without duplicates.
type Profile struct {
	JobTitle        string   `json:"metier_recherche"`
	Skills          []string `json:"competences_cles"`
	Strengths       []string `json:"points_forts"`
	ExperienceLevel string   `json:"niveau_experience"`
}

// mergeSkills combines skill lists keeping first-seen order and spelling.
// Duplicates are detected case-insensitively.
func mergeSkills(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, skill := range list {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			key := strings.ToLower(skill)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, skill)
		}
	}
	return merged
}
