package auth

import "context"

// UsuarioUpdate describes an account edit. A nil PasswordHash leaves the
// stored hash untouched.
type UsuarioUpdate struct {
	Nombre       string
	Usuario      string
	Rol          Role
	PasswordHash *string
}

// UserMetrics feeds the administrator dashboard.
type UserMetrics struct {
	TotalOficiales        int `json:"totalOficiales"`
	TotalVoluntarios      int `json:"totalVoluntarios"`
	AtencionesOficiales   int `json:"atencionesOficiales"`
	AtencionesVoluntarios int `json:"atencionesVoluntarios"`
}

// UserStore describes the persistence operations the auth subsystem and
// the user-management handlers require.
type UserStore interface {
	Create(ctx context.Context, u *Usuario) error
	List(ctx context.Context) ([]Usuario, error)
	FindByID(ctx context.Context, id int) (Usuario, error)
	// FindByLogin returns the account regardless of its active flag so
	// the caller can log "missing" and "inactive" separately.
	FindByLogin(ctx context.Context, login string) (Usuario, error)
	Update(ctx context.Context, id int, upd UsuarioUpdate) error
	SetActivo(ctx context.Context, id int, activo bool) error
	Delete(ctx context.Context, id int) error
	Metrics(ctx context.Context) (UserMetrics, error)
}
