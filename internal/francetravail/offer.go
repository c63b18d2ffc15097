package francetravail

// Experience levels as exposed on the wire. "tous" means the offer does not
// target a specific level.
const (
	LevelJunior       = "junior"
	LevelIntermediate = "intermediaire"
	LevelSenior       = "senior"
	LevelAny          = "tous"
)

// Offer is a France Travail job offer normalized to the application format.
// JSON field names match the upstream French schema so existing consumers of
// the API keep working.
type Offer struct {
	ID          string   `json:"id"`
	Title       string   `json:"intitule"`
	Company     Company  `json:"entreprise"`
	Location    Location `json:"lieuTravail"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Salary      string   `json:"salaire,omitempty"`
	Contract    string   `json:"contrat,omitempty"`
	Level       string   `json:"niveau"`
	Tags        []string `json:"tags,omitempty"`
}

type Company struct {
	Name string `json:"nom"`
}

type Location struct {
	Label string `json:"libelle"`
}
