package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/models"
)

func (d *Database) GetUsers(ctx context.Context) ([]models.User, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.User, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT id, name, slug FROM users ORDER BY id ASC")
		if err != nil {
			return nil, wrapErr(EntityUser, "list", 0, err)
		}
		defer rows.Close()

		var users []models.User
		for rows.Next() {
			var u models.User
			if err := rows.Scan(&u.ID, &u.Name, &u.Slug); err != nil {
				return nil, wrapErr(EntityUser, "list", 0, err)
			}
			users = append(users, u)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityUser, "list", 0, err)
		}
		return users, nil
	})
}

// EnsureDefaultUser returns the id of the "personal" profile, creating it on first use.
func (d *Database) EnsureDefaultUser(ctx context.Context) (int64, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (int64, error) {
		var id int64
		err := d.DB.QueryRowContext(ctx, "SELECT id FROM users WHERE slug = ?", config.DefaultUserSlug).Scan(&id)
		if err == sql.ErrNoRows {
			res, err := d.DB.ExecContext(ctx, "INSERT INTO users (name, slug) VALUES ('Personal', ?)", config.DefaultUserSlug)
			if err != nil {
				return 0, wrapErr(EntityUser, "ensure default", 0, err)
			}
			return res.LastInsertId()
		}
		if err != nil {
			return 0, wrapErr(EntityUser, "ensure default", 0, err)
		}
		return id, nil
	})
}

func (d *Database) CreateUser(ctx context.Context, name, slug string) (int64, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (int64, error) {
		name = strings.TrimSpace(name)
		if name == "" || slug == "" {
			return 0, wrapErr(EntityUser, "create", 0, errors.New("name and slug are required"))
		}
		res, err := d.DB.ExecContext(ctx, "INSERT INTO users (name, slug) VALUES (?, ?)", name, slug)
		if err != nil {
			return 0, wrapErr(EntityUser, "create", 0, err)
		}
		return res.LastInsertId()
	})
}

func (d *Database) GetUserIDBySlug(ctx context.Context, slug string) (int64, bool, error) {
	type slugResult struct {
		id int64
		ok bool
	}
	result, err := withDBContextResult(d, ctx, func(ctx context.Context) (slugResult, error) {
		var id int64
		err := d.DB.QueryRowContext(ctx, "SELECT id FROM users WHERE slug = ?", slug).Scan(&id)
		if err == sql.ErrNoRows {
			return slugResult{}, nil
		}
		if err != nil {
			return slugResult{}, wrapErr(EntityUser, "get by slug", 0, err)
		}
		return slugResult{id: id, ok: true}, nil
	})
	if err != nil {
		return 0, false, err
	}
	return result.id, result.ok, nil
}
