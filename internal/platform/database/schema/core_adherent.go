package schema

// AdherentTable represents the 'core.adherent' table
type AdherentTable struct {
	Table           string
	ID              string
	Nom             string
	Prenom          string
	Sexe            string
	DateNaissance   string
	Adresse         string
	Quartier        string
	Telephone       string
	Email           string
	FonctionEglise  string
	DateInscription string
	CreatedAt       string
	UpdatedAt       string
}

// Adherent is the schema definition for core.adherent
var Adherent = AdherentTable{
	Table:           "core.adherent",
	ID:              "id",
	Nom:             "nom",
	Prenom:          "prenom",
	Sexe:            "sexe",
	DateNaissance:   "datenaissance",
	Adresse:         "adresse",
	Quartier:        "quartier",
	Telephone:       "telephone",
	Email:           "email",
	FonctionEglise:  "fonctioneglise",
	DateInscription: "dateinscription",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t AdherentTable) Columns() []string {
	return []string{
		t.ID, t.Nom, t.Prenom, t.Sexe, t.DateNaissance, t.Adresse,
		t.Quartier, t.Telephone, t.Email, t.FonctionEglise,
		t.DateInscription, t.CreatedAt, t.UpdatedAt,
	}
}
