package press

import (
	"context"
	"database/sql"
	"strings"

	"newsstand/orm"
)

// Article is a piece of writing by exactly one Author in exactly one
// Magazine. The title is trimmed and immutable after construction; the
// content is optional free text and may change.
type Article struct {
	id      int64
	title   string
	content string

	authorID   int64
	magazineID int64
	author     *Author
	magazine   *Magazine
}

// NewArticle validates title and the two references and returns an
// unsaved Article.
func NewArticle(title string, author *Author, magazine *Magazine) (*Article, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, errNonEmpty("Article.title")
	}
	a := &Article{title: trimmed}
	if err := a.SetAuthor(author); err != nil {
		return nil, err
	}
	if err := a.SetMagazine(magazine); err != nil {
		return nil, err
	}
	return a, nil
}

// NewArticleWithContent is NewArticle with the free-text content set up
// front.
func NewArticleWithContent(title, content string, author *Author, magazine *Magazine) (*Article, error) {
	a, err := NewArticle(title, author, magazine)
	if err != nil {
		return nil, err
	}
	a.content = content
	return a, nil
}

// ID is zero until the article has been saved.
func (a *Article) ID() int64 { return a.id }

func (a *Article) Title() string { return a.title }

// Content returns "" when the article has none.
func (a *Article) Content() string { return a.content }

// SetContent replaces the free-text content. The change is persisted on
// the next Save.
func (a *Article) SetContent(content string) { a.content = content }

func (a *Article) Author() *Author { return a.author }

func (a *Article) Magazine() *Magazine { return a.magazine }

// SetAuthor replaces the author reference; nil is rejected.
func (a *Article) SetAuthor(author *Author) error {
	if author == nil {
		return errRequired("Article.author", "an Author")
	}
	a.author = author
	a.authorID = author.id
	return nil
}

// SetMagazine replaces the magazine reference; nil is rejected.
func (a *Article) SetMagazine(magazine *Magazine) error {
	if magazine == nil {
		return errRequired("Article.magazine", "a Magazine")
	}
	a.magazine = magazine
	a.magazineID = magazine.id
	return nil
}

var (
	articlesTable  = orm.ResolveTableName[Article]()
	articleColumns = []string{"id", "title", "content", "author_id", "magazine_id"}
)

func articleQuery(db orm.Querier) *orm.Query[Article] {
	return orm.NewQuery[Article](db, articlesTable, articleColumns, "id", scanArticle, articleColumnValues, setArticlePK)
}

func scanArticle(rows *sql.Rows) (Article, error) {
	cols, _ := rows.Columns()
	var a Article
	var content sql.NullString
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &a.id
		case "title":
			dest[i] = &a.title
		case "content":
			dest[i] = &content
		case "author_id":
			dest[i] = &a.authorID
		case "magazine_id":
			dest[i] = &a.magazineID
		default:
			dest[i] = new(any)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return a, err
	}
	a.content = content.String
	return a, nil
}

func articleColumnValues(a *Article, includesPK bool) ([]string, []any) {
	// Absent content is stored as NULL, not "".
	var content any
	if a.content != "" {
		content = a.content
	}
	if includesPK {
		return []string{"id", "title", "content", "author_id", "magazine_id"},
			[]any{a.id, a.title, content, a.authorID, a.magazineID}
	}
	return []string{"title", "content", "author_id", "magazine_id"},
		[]any{a.title, content, a.authorID, a.magazineID}
}

func setArticlePK(a *Article, id int64) { a.id = id }

// Save persists the article, first saving an unsaved Author or Magazine
// reference (one level only). When db is a *orm.DB the cascade runs in a
// single transaction, so a failing magazine insert cannot leave behind a
// freshly inserted author. Inside an existing transaction the cascade
// joins it. Returns the receiver for chaining.
func (a *Article) Save(ctx context.Context, db orm.Querier) (*Article, error) {
	if d, ok := db.(*orm.DB); ok {
		err := d.Transaction(ctx, func(tx *orm.Tx) error {
			_, err := a.save(ctx, tx)
			return err
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return a.save(ctx, db)
}

func (a *Article) save(ctx context.Context, db orm.Querier) (*Article, error) {
	if a.author.id == 0 {
		if _, err := a.author.Save(ctx, db); err != nil {
			return nil, err
		}
	}
	if a.magazine.id == 0 {
		if _, err := a.magazine.Save(ctx, db); err != nil {
			return nil, err
		}
	}
	a.authorID = a.author.id
	a.magazineID = a.magazine.id

	if a.id == 0 {
		if err := articleQuery(db).Create(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	}
	if err := articleQuery(db).Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ArticleByID fetches one article and hydrates its Author and Magazine by
// their stored foreign keys (two extra point lookups). Returns
// orm.ErrNotFound when the id is unknown.
func ArticleByID(ctx context.Context, db orm.Querier, id int64) (*Article, error) {
	a, err := articleQuery(db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.hydrate(ctx, db); err != nil {
		return nil, err
	}
	return &a, nil
}

// hydrate loads the Author and Magazine referenced by the stored foreign
// keys. Stored rows passed validation on write, so no re-validation
// happens here.
func (a *Article) hydrate(ctx context.Context, db orm.Querier) error {
	author, err := AuthorByID(ctx, db, a.authorID)
	if err != nil {
		return err
	}
	magazine, err := MagazineByID(ctx, db, a.magazineID)
	if err != nil {
		return err
	}
	a.author = author
	a.magazine = magazine
	return nil
}

// hydrateArticles hydrates a scanned batch. One author and one magazine
// lookup per article; fine at this scale.
func hydrateArticles(ctx context.Context, db orm.Querier, rows []Article) ([]*Article, error) {
	articles := make([]*Article, len(rows))
	for i := range rows {
		if err := rows[i].hydrate(ctx, db); err != nil {
			return nil, err
		}
		articles[i] = &rows[i]
	}
	return articles, nil
}
