package schema

// GroupeTable represents the 'core.groupe' table
type GroupeTable struct {
	Table       string
	ID          string
	Nom         string
	Description string
	MembreCount string
	CreatedAt   string
	UpdatedAt   string
}

// Groupe is the schema definition for core.groupe
var Groupe = GroupeTable{
	Table:       "core.groupe",
	ID:          "id",
	Nom:         "nom",
	Description: "description",
	MembreCount: "membrecount",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t GroupeTable) Columns() []string {
	return []string{
		t.ID, t.Nom, t.Description, t.MembreCount, t.CreatedAt, t.UpdatedAt,
	}
}
