package schema

// AdherentGroupeTable represents the 'core.adherentgroupe' join table
type AdherentGroupeTable struct {
	Table        string
	AdherentID   string
	GroupeID     string
	DateAdhesion string
	CreatedAt    string
}

// AdherentGroupe is the schema definition for core.adherentgroupe
var AdherentGroupe = AdherentGroupeTable{
	Table:        "core.adherentgroupe",
	AdherentID:   "adherentid",
	GroupeID:     "groupeid",
	DateAdhesion: "dateadhesion",
	CreatedAt:    "createdat",
}

func (t AdherentGroupeTable) Columns() []string {
	return []string{t.AdherentID, t.GroupeID, t.DateAdhesion, t.CreatedAt}
}
