package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// CreationRepositoryPG implements domain.CreationRepository over PostgreSQL.
type CreationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCreationRepository constructs a repository over the given SQL executor.
func NewCreationRepository(sql infra.SQLExecutor) *CreationRepositoryPG {
	return &CreationRepositoryPG{sql: sql}
}

// Create inserts a new creation and returns the stored record with its
// assigned id and timestamp.
func (r *CreationRepositoryPG) Create(ctx context.Context, creation *domain.Creation) (*domain.Creation, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertCreation,
		creation.UserID, creation.Prompt, creation.Content, string(creation.Type), creation.FileURL, creation.Publish)
	stored, err := scanCreation(row)
	if err != nil {
		return nil, domain.PersistenceError("Failed to add creation to the db", err)
	}
	return stored, nil
}

// ListByUser returns the user's creations, newest first.
func (r *CreationRepositoryPG) ListByUser(ctx context.Context, userID string, opts domain.ListOptions) ([]domain.Creation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectCreationsByUser, userID, opts.Skip, opts.Take)
	if err != nil {
		return nil, domain.PersistenceError("failed to list creations", err)
	}
	defer rows.Close()

	var creations []domain.Creation
	for rows.Next() {
		var c domain.Creation
		var typ string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Prompt, &c.Content, &typ, &c.FileURL, &c.Publish, &c.Likes, &c.CreatedAt); err != nil {
			return nil, domain.PersistenceError("failed to scan creation", err)
		}
		c.Type = domain.CreationType(typ)
		if c.Likes == nil {
			c.Likes = []string{}
		}
		creations = append(creations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.PersistenceError("failed to list creations", err)
	}
	return creations, nil
}

// ListPublic returns published creations, newest first, with the conventional
// feed projection (file_url and publish are omitted).
func (r *CreationRepositoryPG) ListPublic(ctx context.Context, page, limit int) ([]domain.Creation, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	skip := (page - 1) * limit

	rows, err := r.sql.Query(ctx, sqlinline.QSelectPublicCreations, skip, limit)
	if err != nil {
		return nil, domain.PersistenceError("failed to list public creations", err)
	}
	defer rows.Close()

	var creations []domain.Creation
	for rows.Next() {
		var c domain.Creation
		var typ string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Prompt, &c.Content, &typ, &c.Likes, &c.CreatedAt); err != nil {
			return nil, domain.PersistenceError("failed to scan creation", err)
		}
		c.Type = domain.CreationType(typ)
		c.Publish = true
		if c.Likes == nil {
			c.Likes = []string{}
		}
		creations = append(creations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.PersistenceError("failed to list public creations", err)
	}
	return creations, nil
}

// ToggleLike flips the caller's membership in the likes array. The update is a
// single conditional statement so concurrent toggles on the same row cannot
// lose each other's writes.
func (r *CreationRepositoryPG) ToggleLike(ctx context.Context, userID string, creationID int64) (*domain.Creation, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QToggleCreationLike, userID, creationID)
	updated, err := scanCreation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("Creation not found")
		}
		return nil, domain.PersistenceError("failed to toggle like", err)
	}
	return updated, nil
}

func scanCreation(row pgx.Row) (*domain.Creation, error) {
	var c domain.Creation
	var typ string
	if err := row.Scan(&c.ID, &c.UserID, &c.Prompt, &c.Content, &typ, &c.FileURL, &c.Publish, &c.Likes, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Type = domain.CreationType(typ)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return &c, nil
}

var _ domain.CreationRepository = (*CreationRepositoryPG)(nil)
