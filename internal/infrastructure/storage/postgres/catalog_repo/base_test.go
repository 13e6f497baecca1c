package catalog_repo

import (
	"testing"
)

func newSQLOnlyRepo() *BaseCatalogRepo[any] {
	// nil TxManager: these tests only build SQL, they never execute it.
	return NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "code", "name"}, func() any { return nil })
}

func TestParseOrderBy(t *testing.T) {
	repo := newSQLOnlyRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "default", orderBy: "", want: "name ASC"},
		{name: "ascending", orderBy: "code", want: "code ASC"},
		{name: "explicit ascending", orderBy: "+code", want: "code ASC"},
		{name: "descending", orderBy: "-name", want: "name DESC"},
		{name: "common column", orderBy: "-created_at", want: "created_at DESC"},
		{name: "unknown column", orderBy: "evil; DROP TABLE", wantErr: true},
		{name: "bare dash", orderBy: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.orderBy, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy(%q) failed: %v", tt.orderBy, err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q)\nwant: %s\ngot:  %s", tt.orderBy, tt.want, got)
			}
		})
	}
}

func TestBaseSelect_SQL(t *testing.T) {
	repo := newSQLOnlyRepo()

	sql, _, err := repo.baseSelect().ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, code, name FROM test_table"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
}

func TestHardDelete_SQL(t *testing.T) {
	repo := newSQLOnlyRepo()

	q := repo.Builder().
		Delete(repo.tableName).
		Where("id = ?", "some-id")

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "DELETE FROM test_table WHERE id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 {
		t.Errorf("Args mismatch: %v", args)
	}
}
