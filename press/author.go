// Package press models the three linked entities of the magazine archive:
// authors, magazines and articles. Entities validate their fields at
// construction, persist themselves with Save (insert when new, update when
// already identified), and answer relationship and aggregate queries by
// issuing joins per call. All three types live in one package so the
// mutual references need no import cycle tricks.
package press

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"newsstand/orm"
	"newsstand/scope"
)

// Author is a writer of articles. The name is unique, trimmed and
// read-only after construction.
type Author struct {
	id   int64
	name string
}

// NewAuthor validates name and returns an unsaved Author (ID zero until
// Save).
func NewAuthor(name string) (*Author, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errNonEmpty("Author.name")
	}
	return &Author{name: trimmed}, nil
}

// ID is zero until the author has been saved.
func (a *Author) ID() int64 { return a.id }

func (a *Author) Name() string { return a.name }

var (
	authorsTable  = orm.ResolveTableName[Author]()
	authorColumns = []string{"id", "name"}
)

func authorQuery(db orm.Querier) *orm.Query[Author] {
	return orm.NewQuery[Author](db, authorsTable, authorColumns, "id", scanAuthor, authorColumnValues, setAuthorPK)
}

func scanAuthor(rows *sql.Rows) (Author, error) {
	cols, _ := rows.Columns()
	var a Author
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &a.id
		case "name":
			dest[i] = &a.name
		default:
			dest[i] = new(any)
		}
	}
	err := rows.Scan(dest...)
	return a, err
}

func authorColumnValues(a *Author, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "name"}, []any{a.id, a.name}
	}
	return []string{"name"}, []any{a.name}
}

func setAuthorPK(a *Author, id int64) { a.id = id }

// Save inserts the author and adopts the store-assigned id, or updates the
// existing row when already identified. Returns the receiver for chaining.
func (a *Author) Save(ctx context.Context, db orm.Querier) (*Author, error) {
	if a.id == 0 {
		if err := authorQuery(db).Create(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	}
	if err := authorQuery(db).Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AuthorByID fetches one author. Returns orm.ErrNotFound when the id is
// unknown.
func AuthorByID(ctx context.Context, db orm.Querier, id int64) (*Author, error) {
	a, err := authorQuery(db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AllAuthors lists authors ordered by id, optionally narrowed by scopes.
func AllAuthors(ctx context.Context, db orm.Querier, scopes ...scope.Scope) ([]*Author, error) {
	rows, err := authorQuery(db).Scopes(scopes...).OrderBy("id").All(ctx)
	if err != nil {
		return nil, err
	}
	authors := make([]*Author, len(rows))
	for i := range rows {
		authors[i] = &rows[i]
	}
	return authors, nil
}

// Articles returns every article written by this author. An unsaved
// author has none; no query is issued.
func (a *Author) Articles(ctx context.Context, db orm.Querier) ([]*Article, error) {
	if a.id == 0 {
		return nil, nil
	}
	rows, err := articleQuery(db).Where("author_id = ?", a.id).OrderBy("id").All(ctx)
	if err != nil {
		return nil, err
	}
	return hydrateArticles(ctx, db, rows)
}

// Magazines returns the distinct magazines this author has written for,
// joined through articles.
func (a *Author) Magazines(ctx context.Context, db orm.Querier) ([]*Magazine, error) {
	if a.id == 0 {
		return nil, nil
	}
	rows, err := magazineQuery(db).
		Distinct().
		Select("magazines.id, magazines.name, magazines.category").
		Join("JOIN articles ON articles.magazine_id = magazines.id").
		Where("articles.author_id = ?", a.id).
		All(ctx)
	if err != nil {
		return nil, err
	}
	mags := make([]*Magazine, len(rows))
	for i := range rows {
		mags[i] = &rows[i]
	}
	return mags, nil
}

// TopicAreas returns the sorted, de-duplicated categories of the
// magazines this author has written for. Magazines without a category are
// skipped.
func (a *Author) TopicAreas(ctx context.Context, db orm.Querier) ([]string, error) {
	mags, err := a.Magazines(ctx, db)
	if err != nil {
		return nil, err
	}
	var categories []string
	for _, m := range mags {
		if m.Category() != "" {
			categories = append(categories, m.Category())
		}
	}
	categories = orm.Unique(categories)
	sort.Strings(categories)
	return categories, nil
}

// AddArticle constructs an article by this author in the given magazine
// and saves it immediately.
func (a *Author) AddArticle(ctx context.Context, db orm.Querier, magazine *Magazine, title string) (*Article, error) {
	article, err := NewArticle(title, a, magazine)
	if err != nil {
		return nil, err
	}
	return article.Save(ctx, db)
}
