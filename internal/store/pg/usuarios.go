package pg

import (
	"context"
	"database/sql"

	"atp-hospital/internal/auth"
)

// UserStore persists staff accounts.
type UserStore struct {
	db *sql.DB
}

var _ auth.UserStore = (*UserStore)(nil)

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u *auth.Usuario) error {
	err := s.db.QueryRowContext(ctx,
		`insert into usuarios(nombre, usuario, contrasena, rol, activo)
		 values($1, $2, $3, $4, true)
		 returning id`,
		u.Nombre, u.Usuario, u.PasswordHash, u.Rol,
	).Scan(&u.ID)
	if err != nil {
		return translateErr(err)
	}
	u.Activo = true
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]auth.Usuario, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, nombre, usuario, rol, activo from usuarios order by id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []auth.Usuario
	for rows.Next() {
		var u auth.Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Usuario, &u.Rol, &u.Activo); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (s *UserStore) FindByID(ctx context.Context, id int) (auth.Usuario, error) {
	var u auth.Usuario
	err := s.db.QueryRowContext(ctx,
		`select id, nombre, usuario, contrasena, rol, activo from usuarios where id = $1`, id,
	).Scan(&u.ID, &u.Nombre, &u.Usuario, &u.PasswordHash, &u.Rol, &u.Activo)
	if err != nil {
		return auth.Usuario{}, translateErr(err)
	}
	return u, nil
}

func (s *UserStore) FindByLogin(ctx context.Context, login string) (auth.Usuario, error) {
	var u auth.Usuario
	err := s.db.QueryRowContext(ctx,
		`select id, nombre, usuario, contrasena, rol, activo from usuarios where usuario = $1`, login,
	).Scan(&u.ID, &u.Nombre, &u.Usuario, &u.PasswordHash, &u.Rol, &u.Activo)
	if err != nil {
		return auth.Usuario{}, translateErr(err)
	}
	return u, nil
}

func (s *UserStore) Update(ctx context.Context, id int, upd auth.UsuarioUpdate) error {
	var (
		res sql.Result
		err error
	)
	if upd.PasswordHash != nil {
		res, err = s.db.ExecContext(ctx,
			`update usuarios set nombre = $1, usuario = $2, contrasena = $3, rol = $4 where id = $5`,
			upd.Nombre, upd.Usuario, *upd.PasswordHash, upd.Rol, id,
		)
	} else {
		res, err = s.db.ExecContext(ctx,
			`update usuarios set nombre = $1, usuario = $2, rol = $3 where id = $4`,
			upd.Nombre, upd.Usuario, upd.Rol, id,
		)
	}
	if err != nil {
		return translateErr(err)
	}
	return requireRow(res)
}

func (s *UserStore) SetActivo(ctx context.Context, id int, activo bool) error {
	res, err := s.db.ExecContext(ctx,
		`update usuarios set activo = $1 where id = $2`, activo, id)
	if err != nil {
		return translateErr(err)
	}
	return requireRow(res)
}

// Delete removes the account. Referral records keep a nullable reference
// to the responsible officer, nulled by the foreign key on delete.
func (s *UserStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `delete from usuarios where id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	return requireRow(res)
}

func (s *UserStore) Metrics(ctx context.Context) (auth.UserMetrics, error) {
	var m auth.UserMetrics
	err := s.db.QueryRowContext(ctx, `
		select
			(select count(*) from usuarios where rol = 'oficial_atp' and activo),
			(select count(*) from usuarios where rol = 'voluntario' and activo),
			(select count(*) from atenciones a join usuarios u on a.oficial_responsable_id = u.id where u.rol = 'oficial_atp'),
			(select count(*) from atenciones a join usuarios u on a.oficial_responsable_id = u.id where u.rol = 'voluntario')
	`).Scan(&m.TotalOficiales, &m.TotalVoluntarios, &m.AtencionesOficiales, &m.AtencionesVoluntarios)
	if err != nil {
		return auth.UserMetrics{}, err
	}
	return m, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return auth.ErrNotFound
	}
	return nil
}
