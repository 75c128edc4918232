package orm_test

import (
	"reflect"
	"testing"

	"newsstand/orm"
)

func TestCountByKeyBasic(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.SQLite)

	_, _ = orm.CountByKey[int64](t.Context(), tq, orm.GroupCountQuery{
		Table:  "articles",
		KeyCol: "author_id",
	})

	got := tq.LastQuery()
	want := `SELECT "author_id", COUNT(*) FROM "articles" GROUP BY "author_id"`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
	if len(got.Args) != 0 {
		t.Errorf("Args = %v, want none", got.Args)
	}
}

func TestCountByKeyWhereAndMinCount(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.SQLite)

	_, _ = orm.CountByKey[int64](t.Context(), tq, orm.GroupCountQuery{
		Table:    "articles",
		KeyCol:   "author_id",
		Where:    "magazine_id = ?",
		Args:     []any{int64(7)},
		MinCount: 2,
	})

	got := tq.LastQuery()
	want := `SELECT "author_id", COUNT(*) FROM "articles" WHERE magazine_id = ? GROUP BY "author_id" HAVING COUNT(*) > ?`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
	if len(got.Args) != 2 || got.Args[0] != int64(7) || got.Args[1] != int64(2) {
		t.Errorf("Args = %v", got.Args)
	}
}

func TestCountByKeyTopOnly(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.SQLite)

	_, _ = orm.CountByKey[int64](t.Context(), tq, orm.GroupCountQuery{
		Table:   "articles",
		KeyCol:  "magazine_id",
		TopOnly: true,
	})

	got := tq.LastQuery()
	want := `SELECT "magazine_id", COUNT(*) FROM "articles" GROUP BY "magazine_id" ORDER BY COUNT(*) DESC LIMIT 1`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestCountByKeyPostgreSQLRewrite(t *testing.T) {
	t.Parallel()

	tq := orm.NewTestQuerier(orm.PostgreSQL)

	_, _ = orm.CountByKey[int64](t.Context(), tq, orm.GroupCountQuery{
		Table:    "articles",
		KeyCol:   "author_id",
		Where:    "magazine_id = ?",
		Args:     []any{int64(7)},
		MinCount: 2,
	})

	got := tq.LastQuery()
	want := `SELECT "author_id", COUNT(*) FROM "articles" WHERE magazine_id = $1 GROUP BY "author_id" HAVING COUNT(*) > $2`
	if got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"no duplicates", []string{"a", "b"}, []string{"a", "b"}},
		{"keeps first occurrence order", []string{"b", "a", "b", "c", "a"}, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := orm.Unique(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unique(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
