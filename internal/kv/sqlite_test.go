package kv

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSQLStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	s := NewSQLStore(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("admin_session_token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("tok-1"))

	v, ok, err := s.Get(ctx, "admin_session_token")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || v != "tok-1" {
		t.Fatalf("got %q ok=%v, want tok-1", v, ok)
	}

	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreSetDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	s := NewSQLStore(db)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("k", "v").
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mock.ExpectExec("DELETE FROM kv_entries").
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
