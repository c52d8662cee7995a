package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"atp-hospital/internal/auth"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, *UserStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return mock, NewUserStore(db)
}

func TestUserStoreCreateAssignsID(t *testing.T) {
	mock, store := newMock(t)

	mock.ExpectQuery("insert into usuarios").
		WithArgs("Ana López", "alopez", "hash", "oficial_atp").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	u := auth.Usuario{Nombre: "Ana López", Usuario: "alopez", Rol: auth.RoleOficialATP, PasswordHash: "hash"}
	if err := store.Create(context.Background(), &u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 12 || !u.Activo {
		t.Fatalf("unexpected account after create: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserStoreCreateDuplicateLogin(t *testing.T) {
	mock, store := newMock(t)

	mock.ExpectQuery("insert into usuarios").
		WithArgs("Ana", "alopez", "hash", "voluntario").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_usuario_key"})

	u := auth.Usuario{Nombre: "Ana", Usuario: "alopez", Rol: auth.RoleVoluntario, PasswordHash: "hash"}
	err := store.Create(context.Background(), &u)
	if !errors.Is(err, auth.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}

func TestUserStoreFindByLoginIncludesInactive(t *testing.T) {
	mock, store := newMock(t)

	rows := sqlmock.NewRows([]string{"id", "nombre", "usuario", "contrasena", "rol", "activo"}).
		AddRow(4, "Baja", "baja", "hash", "voluntario", false)
	mock.ExpectQuery("select id, nombre, usuario, contrasena, rol, activo from usuarios where usuario").
		WithArgs("baja").
		WillReturnRows(rows)

	u, err := store.FindByLogin(context.Background(), "baja")
	if err != nil {
		t.Fatalf("find by login: %v", err)
	}
	if u.Activo {
		t.Fatal("expected the inactive account to come back as-is")
	}
	if u.PasswordHash != "hash" {
		t.Fatalf("hash not loaded: %+v", u)
	}
}

func TestUserStoreSetActivoMissingAccount(t *testing.T) {
	mock, store := newMock(t)

	mock.ExpectExec("update usuarios set activo").
		WithArgs(false, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.SetActivo(context.Background(), 99, false); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUserStoreUpdateKeepsPasswordWhenNil(t *testing.T) {
	mock, store := newMock(t)

	mock.ExpectExec(`update usuarios set nombre = \$1, usuario = \$2, rol = \$3 where id = \$4`).
		WithArgs("Ana", "alopez", "oficial_atp", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	upd := auth.UsuarioUpdate{Nombre: "Ana", Usuario: "alopez", Rol: auth.RoleOficialATP}
	if err := store.Update(context.Background(), 3, upd); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserStoreMetrics(t *testing.T) {
	mock, store := newMock(t)

	rows := sqlmock.NewRows([]string{"a", "b", "c", "d"}).AddRow(3, 5, 40, 12)
	mock.ExpectQuery("select").WillReturnRows(rows)

	m, err := store.Metrics(context.Background())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.TotalOficiales != 3 || m.TotalVoluntarios != 5 ||
		m.AtencionesOficiales != 40 || m.AtencionesVoluntarios != 12 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}
