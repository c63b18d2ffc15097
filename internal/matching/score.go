package matching

import (
	"strings"

	"github.com/easyjobfind/easyjobfind/internal/francetravail"
)

const (
	titleBandCap  = 40
	skillsBandCap = 40

	titleInTitlePoints       = 20
	titleInDescriptionPoints = 10
	pointsPerSkill           = 8

	levelMatchPoints   = 15
	levelKeywordPoints = 20
)

// Keywords hinting at a level inside the offer text. This table is
// intentionally distinct from the experience normalization in the provider
// client: it reflects how offers describe the expected profile in prose.
var levelKeywords = map[string][]string{
	francetravail.LevelJunior:       {"junior", "débutant", "stage", "alternance", "apprenti"},
	francetravail.LevelIntermediate: {"confirmé", "2 ans", "3 ans", "intermédiaire"},
	francetravail.LevelSenior:       {"senior", "expert", "lead", "5 ans", "10 ans", "expérimenté"},
}

// Score rates how well an offer fits the candidate. Three bands are summed:
// job title (cap 40), skills (cap 40) and experience level (at most 20).
// The result is always within [0, 100].
func Score(offer francetravail.Offer, jobTitle string, skills []string, level string) int {
	title := strings.ToLower(offer.Title)
	description := strings.ToLower(offer.Description)
	text := title + " " + description

	score := 0

	// Title band: 20 points per query word found in the offer title, 10 when
	// it only appears in the description. Words of up to 2 characters are
	// noise and skipped.
	titleScore := 0
	for _, word := range strings.Fields(strings.ToLower(jobTitle)) {
		if len([]rune(word)) <= 2 {
			continue
		}
		if strings.Contains(title, word) {
			titleScore += titleInTitlePoints
		} else if strings.Contains(description, word) {
			titleScore += titleInDescriptionPoints
		}
	}
	score += min(titleScore, titleBandCap)

	// Skills band: 8 points per matched skill.
	skillsScore := 0
	for _, skill := range skills {
		if strings.Contains(text, strings.ToLower(skill)) {
			skillsScore += pointsPerSkill
		}
	}
	score += min(skillsScore, skillsBandCap)

	// Experience band. An offer open to every level, or matching the
	// candidate level exactly, earns 15. Otherwise a level keyword found in
	// the offer text earns 20. The asymmetry is inherited behavior and kept
	// as is.
	if offer.Level == francetravail.LevelAny || offer.Level == level {
		score += levelMatchPoints
	} else if keywords, ok := levelKeywords[level]; ok {
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				score += levelKeywordPoints
				break
			}
		}
	}

	return score
}
