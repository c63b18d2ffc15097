package search

import (
	"context"
	"strings"

	"github.com/easyjobfind/easyjobfind/internal/francetravail"
	"github.com/easyjobfind/easyjobfind/internal/matching"
	"github.com/easyjobfind/easyjobfind/internal/profile"
	"go.uber.org/zap"
)

// Searcher is the provider surface the orchestrator needs. Satisfied by
// *francetravail.Client.
type Searcher interface {
	Authenticate(ctx context.Context) (string, error)
	Search(ctx context.Context, token, keyword string, maxResults int) ([]francetravail.Offer, error)
}

const genericKeyword = "emploi"

// Orchestrator runs provider searches with keyword fallback and ranks the
// results. It never returns errors: a candidate facing a provider outage
// gets an empty list, not a failure page.
type Orchestrator struct {
	client Searcher
	logger *zap.Logger
}

func New(client Searcher, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client: client,
		logger: log,
	}
}

type strategy struct {
	name    string
	keyword string
}

// strategies lists the search keywords to try for a profile, most specific
// first. Empty keywords are produced for strategies that do not apply and
// skipped by the caller.
func strategies(p profile.Profile) []strategy {
	title := strings.TrimSpace(p.JobTitle)
	if title == "" {
		title = genericKeyword
	}

	list := []strategy{{name: "full title", keyword: title}}

	words := strings.Fields(title)
	if len(words) > 1 {
		for _, word := range words {
			if len([]rune(word)) > 3 {
				list = append(list, strategy{name: "first significant word", keyword: word})
				break
			}
		}
	}

	for _, skill := range p.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			list = append(list, strategy{name: "top skill", keyword: skill})
			break
		}
	}

	list = append(list, strategy{name: "generic", keyword: genericKeyword})

	return list
}

// FindMatches searches offers for the profile and returns the best matches,
// highest score first. Authentication failure or exhausted strategies give
// an empty result.
func (o *Orchestrator) FindMatches(ctx context.Context, p profile.Profile) []matching.ScoredOffer {
	token, err := o.client.Authenticate(ctx)
	if err != nil {
		o.logger.Warn("provider authentication failed", zap.Error(err))
		return []matching.ScoredOffer{}
	}

	offers := o.searchWithFallback(ctx, token, p)
	if len(offers) == 0 {
		o.logger.Warn("no offers found after all strategies",
			zap.String("job_title", p.JobTitle),
		)
		return []matching.ScoredOffer{}
	}

	ranked := matching.Rank(offers, p.JobTitle, p.Skills, p.ExperienceLevel)

	scores := make([]int, 0, len(ranked))
	for _, so := range ranked {
		scores = append(scores, so.MatchingScore)
	}
	o.logger.Info("offers ranked",
		zap.String("job_title", p.JobTitle),
		zap.Ints("scores", scores),
	)

	return ranked
}

func (o *Orchestrator) searchWithFallback(ctx context.Context, token string, p profile.Profile) []francetravail.Offer {
	for _, s := range strategies(p) {
		o.logger.Info("searching offers",
			zap.String("strategy", s.name),
			zap.String("keyword", s.keyword),
		)

		offers, err := o.client.Search(ctx, token, s.keyword, 0)
		if err != nil {
			o.logger.Warn("search failed",
				zap.String("strategy", s.name),
				zap.String("keyword", s.keyword),
				zap.Error(err),
			)
			continue
		}
		if len(offers) > 0 {
			return offers
		}
	}

	return nil
}

// FindByKeyword runs a single keyword search without ranking. A blank
// keyword falls back to the generic one.
func (o *Orchestrator) FindByKeyword(ctx context.Context, keyword string) []francetravail.Offer {
	term := strings.TrimSpace(keyword)
	if term == "" {
		term = genericKeyword
	}

	token, err := o.client.Authenticate(ctx)
	if err != nil {
		o.logger.Warn("provider authentication failed", zap.Error(err))
		return []francetravail.Offer{}
	}

	offers, err := o.client.Search(ctx, token, term, 0)
	if err != nil {
		o.logger.Warn("search failed",
			zap.String("keyword", term),
			zap.Error(err),
		)
		return []francetravail.Offer{}
	}

	return offers
}
