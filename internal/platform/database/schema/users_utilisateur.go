package schema

// UtilisateurTable represents the 'users.utilisateur' table
type UtilisateurTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Password    string
	Role        string
	AdherentID  string
	IsVerified  string
	IsActive    string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string
}

// Utilisateur is the schema definition for users.utilisateur
var Utilisateur = UtilisateurTable{
	Table:       "users.utilisateur",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Password:    "passwordhash",
	Role:        "role",
	AdherentID:  "adherentid",
	IsVerified:  "isverified",
	IsActive:    "isactive",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UtilisateurTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.Role, t.AdherentID,
		t.IsVerified, t.IsActive, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
