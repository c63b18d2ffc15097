package francetravail

import (
	"fmt"
	"strings"
)

const (
	placeholderTitle    = "Offre d'emploi"
	placeholderCompany  = "Entreprise non précisée"
	placeholderLocation = "France"
	placeholderContract = "Non précisé"
	fallbackDescription = "Offre d'emploi France Travail"

	offerURLTemplate = "https://candidat.francetravail.fr/offres/recherche/detail/%s"

	maxDescriptionRunes = 500
	maxTags             = 5
)

// Substrings of experienceLibelle that pin an offer to a level. Checked in
// order; the first matching bucket wins.
var (
	juniorMarkers       = []string{"débutant", "moins de 1 an", "sans expérience"}
	intermediateMarkers = []string{"1 an", "2 ans", "3 ans"}
	seniorMarkers       = []string{"5 ans", "10 ans", "expérimenté", "senior"}
)

// normalize converts an upstream offer into the application format, filling
// placeholders for absent fields. It never fails: anything missing gets a
// default.
func normalize(raw rawOffer) Offer {
	title := raw.Intitule
	if title == "" {
		title = placeholderTitle
	}

	company := raw.Entreprise.Nom
	if company == "" {
		company = placeholderCompany
	}

	location := raw.LieuTravail.Libelle
	if location == "" {
		location = placeholderLocation
	}

	description := raw.Description
	if description == "" {
		description = raw.AppellationLibelle
	}
	if description == "" {
		description = fallbackDescription
	}
	description = truncateDescription(description)

	salary := raw.Salaire.Libelle
	if salary == "" {
		salary = raw.Salaire.Commentaire
	}

	contract := raw.TypeContratLibelle
	if contract == "" {
		contract = raw.TypeContrat
	}
	if contract == "" {
		contract = placeholderContract
	}

	return Offer{
		ID:          raw.ID,
		Title:       title,
		Company:     Company{Name: company},
		Location:    Location{Label: location},
		Description: description,
		URL:         fmt.Sprintf(offerURLTemplate, raw.ID),
		Salary:      salary,
		Contract:    contract,
		Level:       inferLevel(raw.ExperienceLibelle),
		Tags:        collectTags(raw.Competences),
	}
}

// truncateDescription caps the description at 500 runes, the last three being
// an ellipsis.
func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionRunes {
		return s
	}
	return string(runes[:maxDescriptionRunes-3]) + "..."
}

func inferLevel(experience string) string {
	experience = strings.ToLower(experience)

	if containsAny(experience, juniorMarkers) {
		return LevelJunior
	}
	if containsAny(experience, intermediateMarkers) {
		return LevelIntermediate
	}
	if containsAny(experience, seniorMarkers) {
		return LevelSenior
	}

	return LevelAny
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// collectTags keeps the first five competences. Upstream serves them either
// as {"libelle": "..."} objects or as plain strings.
func collectTags(competences []any) []string {
	if len(competences) > maxTags {
		competences = competences[:maxTags]
	}

	var tags []string
	for _, comp := range competences {
		switch v := comp.(type) {
		case string:
			tags = append(tags, v)
		case map[string]any:
			label, _ := v["libelle"].(string)
			tags = append(tags, label)
		}
	}
	return tags
}
