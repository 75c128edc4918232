package press

import (
	"context"
	"database/sql"
	"strings"

	"newsstand/orm"
	"newsstand/scope"
)

// Magazine is a publication articles appear in. The name is unique and
// trimmed; the category is optional ("" means none) and trimmed when set.
type Magazine struct {
	id       int64
	name     string
	category string
}

// NewMagazine validates name and category and returns an unsaved
// Magazine. Pass "" for no category.
func NewMagazine(name, category string) (*Magazine, error) {
	m := &Magazine{}
	if err := m.SetName(name); err != nil {
		return nil, err
	}
	if err := m.SetCategory(category); err != nil {
		return nil, err
	}
	return m, nil
}

// ID is zero until the magazine has been saved.
func (m *Magazine) ID() int64 { return m.id }

func (m *Magazine) Name() string { return m.name }

// Category returns "" when the magazine has none.
func (m *Magazine) Category() string { return m.category }

// SetName validates and replaces the name. The change is persisted on the
// next Save.
func (m *Magazine) SetName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errNonEmpty("Magazine.name")
	}
	m.name = trimmed
	return nil
}

// SetCategory validates and replaces the category. "" clears it; anything
// else must be non-empty after trimming.
func (m *Magazine) SetCategory(category string) error {
	if category == "" {
		m.category = ""
		return nil
	}
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return &ValidationError{Field: "Magazine.category", Reason: "must be empty or a non-empty string"}
	}
	m.category = trimmed
	return nil
}

var (
	magazinesTable  = orm.ResolveTableName[Magazine]()
	magazineColumns = []string{"id", "name", "category"}
)

func magazineQuery(db orm.Querier) *orm.Query[Magazine] {
	return orm.NewQuery[Magazine](db, magazinesTable, magazineColumns, "id", scanMagazine, magazineColumnValues, setMagazinePK)
}

func scanMagazine(rows *sql.Rows) (Magazine, error) {
	cols, _ := rows.Columns()
	var m Magazine
	var category sql.NullString
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &m.id
		case "name":
			dest[i] = &m.name
		case "category":
			dest[i] = &category
		default:
			dest[i] = new(any)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return m, err
	}
	m.category = category.String
	return m, nil
}

func magazineColumnValues(m *Magazine, includesPK bool) ([]string, []any) {
	// An absent category is stored as NULL, not "".
	var category any
	if m.category != "" {
		category = m.category
	}
	if includesPK {
		return []string{"id", "name", "category"}, []any{m.id, m.name, category}
	}
	return []string{"name", "category"}, []any{m.name, category}
}

func setMagazinePK(m *Magazine, id int64) { m.id = id }

// Save inserts the magazine and adopts the store-assigned id, or updates
// the existing row when already identified. Returns the receiver for
// chaining.
func (m *Magazine) Save(ctx context.Context, db orm.Querier) (*Magazine, error) {
	if m.id == 0 {
		if err := magazineQuery(db).Create(ctx, m); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err := magazineQuery(db).Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MagazineByID fetches one magazine. Returns orm.ErrNotFound when the id
// is unknown.
func MagazineByID(ctx context.Context, db orm.Querier, id int64) (*Magazine, error) {
	m, err := magazineQuery(db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AllMagazines lists magazines ordered by id, optionally narrowed by
// scopes, e.g. scope.Where("category = ?", "Technology").
func AllMagazines(ctx context.Context, db orm.Querier, scopes ...scope.Scope) ([]*Magazine, error) {
	rows, err := magazineQuery(db).Scopes(scopes...).OrderBy("id").All(ctx)
	if err != nil {
		return nil, err
	}
	mags := make([]*Magazine, len(rows))
	for i := range rows {
		mags[i] = &rows[i]
	}
	return mags, nil
}

// Articles returns every article published in this magazine. An unsaved
// magazine has none; no query is issued.
func (m *Magazine) Articles(ctx context.Context, db orm.Querier) ([]*Article, error) {
	if m.id == 0 {
		return nil, nil
	}
	rows, err := articleQuery(db).Where("magazine_id = ?", m.id).OrderBy("id").All(ctx)
	if err != nil {
		return nil, err
	}
	return hydrateArticles(ctx, db, rows)
}

// Contributors returns the distinct authors who have written for this
// magazine, joined through articles.
func (m *Magazine) Contributors(ctx context.Context, db orm.Querier) ([]*Author, error) {
	if m.id == 0 {
		return nil, nil
	}
	rows, err := authorQuery(db).
		Distinct().
		Select("authors.id, authors.name").
		Join("JOIN articles ON articles.author_id = authors.id").
		Where("articles.magazine_id = ?", m.id).
		All(ctx)
	if err != nil {
		return nil, err
	}
	authors := make([]*Author, len(rows))
	for i := range rows {
		authors[i] = &rows[i]
	}
	return authors, nil
}

// ArticleTitles returns the titles of this magazine's articles in
// insertion order (ascending article id).
func (m *Magazine) ArticleTitles(ctx context.Context, db orm.Querier) ([]string, error) {
	if m.id == 0 {
		return nil, nil
	}
	rows, err := articleQuery(db).
		Select("title").
		Where("magazine_id = ?", m.id).
		OrderBy("id").
		All(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(rows))
	for i := range rows {
		titles[i] = rows[i].title
	}
	return titles, nil
}

// ContributingAuthors returns the ids of authors with strictly more than
// two articles in the given magazine. Order is whatever the grouping
// yields; treat the result as a set.
func ContributingAuthors(ctx context.Context, db orm.Querier, magazineID int64) ([]int64, error) {
	counts, err := orm.CountByKey[int64](ctx, db, orm.GroupCountQuery{
		Table:    articlesTable,
		KeyCol:   "author_id",
		Where:    "magazine_id = ?",
		Args:     []any{magazineID},
		MinCount: 2,
	})
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(counts))
	for i, c := range counts {
		ids[i] = c.Key
	}
	return ids, nil
}

// TopPublisher returns the id of the magazine with the most articles.
// When counts tie, whichever single row the descending-count LIMIT 1 scan
// yields wins; no tie-break is defined. Returns orm.ErrNotFound when no
// articles exist.
func TopPublisher(ctx context.Context, db orm.Querier) (int64, error) {
	counts, err := orm.CountByKey[int64](ctx, db, orm.GroupCountQuery{
		Table:   articlesTable,
		KeyCol:  "magazine_id",
		TopOnly: true,
	})
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, orm.ErrNotFound
	}
	return counts[0].Key, nil
}
