package pg

import (
	"context"
	"database/sql"

	"atp-hospital/internal/audit"
)

// BitacoraStore persists the append-only audit log. The application never
// updates or deletes rows here.
type BitacoraStore struct {
	db *sql.DB
}

var _ audit.Store = (*BitacoraStore)(nil)

func NewBitacoraStore(db *sql.DB) *BitacoraStore {
	return &BitacoraStore{db: db}
}

func (s *BitacoraStore) Append(ctx context.Context, e *audit.Entrada) error {
	err := s.db.QueryRowContext(ctx,
		`insert into bitacora(fecha, usuario_id, accion, descripcion, modulo)
		 values($1, $2, $3, $4, $5)
		 returning id`,
		e.Fecha, e.UsuarioID, e.Accion, e.Descripcion, e.Modulo,
	).Scan(&e.ID)
	return translateErr(err)
}

func (s *BitacoraStore) List(ctx context.Context, rango audit.Rango) ([]audit.EntradaDetalle, error) {
	query := `
		select b.id, b.fecha, coalesce(u.nombre, '') as usuario, coalesce(u.rol, '') as rol,
		       b.accion, b.descripcion, b.modulo
		from bitacora b
		left join usuarios u on b.usuario_id = u.id`
	var args []any
	if rango.Bounded() {
		query += ` where b.fecha::date between $1 and $2`
		args = append(args, rango.Desde, rango.Hasta)
	}
	query += ` order by b.fecha desc, b.id desc`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []audit.EntradaDetalle
	for rows.Next() {
		var e audit.EntradaDetalle
		if err := rows.Scan(&e.ID, &e.Fecha, &e.Usuario, &e.Rol, &e.Accion, &e.Descripcion, &e.Modulo); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
