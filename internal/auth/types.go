package auth

import "strings"

// Role is the closed set of access levels handled by the service.
type Role string

const (
	RoleAdministrador Role = "administrador"
	RoleOficialATP    Role = "oficial_atp"
	RoleVoluntario    Role = "voluntario"
)

// Roles lists every role the service accepts, in privilege order.
var Roles = []Role{RoleAdministrador, RoleOficialATP, RoleVoluntario}

// ParseRole normalizes raw input into a Role.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.TrimSpace(strings.ToLower(raw)))
	return r, r.Valid()
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrador, RoleOficialATP, RoleVoluntario:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Usuario is a staff account. PasswordHash never crosses the API boundary.
type Usuario struct {
	ID           int    `json:"id"`
	Nombre       string `json:"nombre"`
	Usuario      string `json:"usuario"`
	Rol          Role   `json:"rol"`
	Activo       bool   `json:"activo"`
	PasswordHash string `json:"-"`
}

// Identity is the public-safe projection of an account embedded in tokens
// and attached to authenticated requests.
type Identity struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Rol    Role   `json:"rol"`
}

// IdentityOf builds the token-safe view of an account.
func IdentityOf(u Usuario) Identity {
	return Identity{ID: u.ID, Nombre: u.Nombre, Rol: u.Rol}
}
