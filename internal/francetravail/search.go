package francetravail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const searchPath = "/v2/offres/search"

type searchResponse struct {
	Resultats []map[string]any `json:"resultats"`
}

// rawOffer mirrors the upstream offer payload. Every field is optional;
// normalize fills in the defaults.
type rawOffer struct {
	ID                 string `json:"id"`
	Intitule           string `json:"intitule"`
	Description        string `json:"description"`
	AppellationLibelle string `json:"appellationlibelle"`
	Entreprise         struct {
		Nom string `json:"nom"`
	} `json:"entreprise"`
	LieuTravail struct {
		Libelle string `json:"libelle"`
	} `json:"lieuTravail"`
	Salaire struct {
		Libelle     string `json:"libelle"`
		Commentaire string `json:"commentaire"`
	} `json:"salaire"`
	TypeContrat        string `json:"typeContrat"`
	TypeContratLibelle string `json:"typeContratLibelle"`
	ExperienceLibelle  string `json:"experienceLibelle"`
	Competences        []any  `json:"competences"`
}

// Search queries the offers API with a single keyword and returns normalized
// offers. The range parameter is 0-indexed and inclusive; the API answers
// 206 instead of 200 when fewer results than requested are available.
func (c *Client) Search(ctx context.Context, token, keyword string, maxResults int) ([]Offer, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	q := url.Values{}
	q.Set("motsCles", keyword)
	q.Set("range", fmt.Sprintf("0-%d", maxResults-1))

	endpoint := fmt.Sprintf("%s%s", c.APIURL, searchPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("search france travail",
		zap.String("keyword", keyword),
		zap.String("url", req.URL.String()),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("search request: bad status: %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	raws := make([]rawOffer, 0, len(body.Resultats))
	cfg := &mapstructure.DecoderConfig{
		Result:  &raws,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(body.Resultats); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}

	offers := make([]Offer, 0, len(raws))
	for _, raw := range raws {
		offers = append(offers, normalize(raw))
	}

	c.logger.Info("france travail offers found",
		zap.String("keyword", keyword),
		zap.Int("count", len(offers)),
		zap.Bool("partial", resp.StatusCode == http.StatusPartialContent),
	)

	return offers, nil
}
