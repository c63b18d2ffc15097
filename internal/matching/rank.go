package matching

import (
	"sort"

	"github.com/easyjobfind/easyjobfind/internal/francetravail"
)

// TopN is how many offers a ranking returns at most.
const TopN = 5

// ScoredOffer is an offer with its computed matching score. It only exists
// between scoring and rendering.
type ScoredOffer struct {
	francetravail.Offer
	MatchingScore int `json:"matching_score"`
}

// Rank scores every offer against the profile and returns the best five,
// highest score first. The sort is stable: ties keep the upstream order.
func Rank(offers []francetravail.Offer, jobTitle string, skills []string, level string) []ScoredOffer {
	scored := make([]ScoredOffer, 0, len(offers))
	for _, offer := range offers {
		scored = append(scored, ScoredOffer{
			Offer:         offer,
			MatchingScore: Score(offer, jobTitle, skills, level),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchingScore > scored[j].MatchingScore
	})

	if len(scored) > TopN {
		scored = scored[:TopN]
	}

	return scored
}
