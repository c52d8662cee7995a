package pg

import (
	"context"
	"database/sql"

	"atp-hospital/internal/atenciones"
)

// AtencionStore persists patient-referral records.
type AtencionStore struct {
	db *sql.DB
}

var _ atenciones.Store = (*AtencionStore)(nil)

func NewAtencionStore(db *sql.DB) *AtencionStore {
	return &AtencionStore{db: db}
}

func (s *AtencionStore) Create(ctx context.Context, a *atenciones.Atencion) error {
	err := s.db.QueryRowContext(ctx,
		`insert into atenciones
		 (fecha_solicitud, nombre_paciente, identidad_paciente, edad_paciente,
		  especialidad, procedencia, motivo_solicitud, oficial_responsable_id, observaciones)
		 values($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 returning id`,
		a.FechaSolicitud, a.NombrePaciente, a.IdentidadPaciente, a.EdadPaciente,
		a.Especialidad, a.Procedencia, a.MotivoSolicitud, a.OficialResponsableID, a.Observaciones,
	).Scan(&a.ID)
	return translateErr(err)
}

func (s *AtencionStore) List(ctx context.Context, rango atenciones.Rango) ([]atenciones.Atencion, error) {
	query := `
		select a.id, a.fecha_solicitud, a.nombre_paciente, a.identidad_paciente,
		       a.edad_paciente, a.especialidad, a.procedencia, a.motivo_solicitud,
		       a.oficial_responsable_id, coalesce(u.nombre, '') as oficial, a.observaciones
		from atenciones a
		left join usuarios u on a.oficial_responsable_id = u.id`
	var args []any
	if rango.Bounded() {
		query += ` where a.fecha_solicitud between $1 and $2`
		args = append(args, rango.Desde, rango.Hasta)
	}
	query += ` order by a.fecha_solicitud desc, a.id desc`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []atenciones.Atencion
	for rows.Next() {
		var (
			a       atenciones.Atencion
			oficial sql.NullInt64
		)
		if err := rows.Scan(
			&a.ID, &a.FechaSolicitud, &a.NombrePaciente, &a.IdentidadPaciente,
			&a.EdadPaciente, &a.Especialidad, &a.Procedencia, &a.MotivoSolicitud,
			&oficial, &a.Oficial, &a.Observaciones,
		); err != nil {
			return nil, err
		}
		if oficial.Valid {
			id := int(oficial.Int64)
			a.OficialResponsableID = &id
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (s *AtencionStore) Dashboard(ctx context.Context) (atenciones.Dashboard, error) {
	var d atenciones.Dashboard

	if err := s.db.QueryRowContext(ctx,
		`select count(*) from atenciones`).Scan(&d.TotalAtenciones); err != nil {
		return atenciones.Dashboard{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`select especialidad, count(*) as total from atenciones group by especialidad order by total desc`)
	if err != nil {
		return atenciones.Dashboard{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var g atenciones.GrupoEspecialidad
		if err := rows.Scan(&g.Especialidad, &g.Total); err != nil {
			return atenciones.Dashboard{}, err
		}
		d.PorEspecialidad = append(d.PorEspecialidad, g)
	}
	if err := rows.Err(); err != nil {
		return atenciones.Dashboard{}, err
	}

	rows, err = s.db.QueryContext(ctx,
		`select procedencia, count(*) as total from atenciones group by procedencia order by total desc`)
	if err != nil {
		return atenciones.Dashboard{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var g atenciones.GrupoProcedencia
		if err := rows.Scan(&g.Procedencia, &g.Total); err != nil {
			return atenciones.Dashboard{}, err
		}
		d.PorProcedencia = append(d.PorProcedencia, g)
	}
	if err := rows.Err(); err != nil {
		return atenciones.Dashboard{}, err
	}

	rows, err = s.db.QueryContext(ctx, `
		select to_char(fecha_solicitud, 'YYYY-MM-DD') as fecha, count(*) as total
		from atenciones
		where fecha_solicitud >= current_date - interval '30 days'
		group by fecha
		order by fecha asc`)
	if err != nil {
		return atenciones.Dashboard{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var c atenciones.ConteoFecha
		if err := rows.Scan(&c.Fecha, &c.Total); err != nil {
			return atenciones.Dashboard{}, err
		}
		d.Ultimos30 = append(d.Ultimos30, c)
	}
	return d, rows.Err()
}
