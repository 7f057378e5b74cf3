package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/models"
)

const taskColumns = `id, user_id, title, status, pomodoros, created_at, completed_at`

func scanTask(row interface{ Scan(...interface{}) error }) (models.Task, error) {
	var t models.Task
	var status string
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &status, &t.Pomodoros, &t.CreatedAt, &t.CompletedAt); err != nil {
		return models.Task{}, err
	}
	t.Status = models.TaskStatus(status)
	return t, nil
}

// AddTask inserts an open task and returns its id.
func (d *Database) AddTask(ctx context.Context, userID int64, title string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, wrapErr(EntityTask, "add", 0, errors.New("title is required"))
	}
	if len([]rune(title)) > config.MaxTaskTitleLength {
		title = string([]rune(title)[:config.MaxTaskTitleLength])
	}
	return withDBContextResult(d, ctx, func(ctx context.Context) (int64, error) {
		res, err := d.DB.ExecContext(ctx,
			"INSERT INTO tasks (user_id, title, status, created_at) VALUES (?, ?, 'open', ?)",
			userID, title, utcArg(time.Now()))
		if err != nil {
			return 0, wrapErr(EntityTask, "add", 0, err)
		}
		return res.LastInsertId()
	})
}

// GetTasks lists the user's tasks, open ones first.
func (d *Database) GetTasks(ctx context.Context, userID int64, includeDone bool) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?"
	if !includeDone {
		query += " AND status = 'open'"
	}
	query += " ORDER BY CASE status WHEN 'open' THEN 0 ELSE 1 END, created_at ASC, id ASC"
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Task, error) {
		rows, err := d.DB.QueryContext(ctx, query, userID)
		if err != nil {
			return nil, wrapErr(EntityTask, "list", 0, err)
		}
		defer rows.Close()

		var out []models.Task
		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				return nil, wrapErr(EntityTask, "list", 0, err)
			}
			out = append(out, t)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityTask, "list", 0, err)
		}
		return out, nil
	})
}

func (d *Database) GetTask(ctx context.Context, id int64) (models.Task, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.Task, error) {
		t, err := scanTask(d.DB.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
		if err == sql.ErrNoRows {
			return models.Task{}, wrapErr(EntityTask, "get", id, ErrNotFound)
		}
		return t, wrapErr(EntityTask, "get", id, err)
	})
}

func (d *Database) execTask(ctx context.Context, op string, id int64, query string, args ...interface{}) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		res, err := d.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return wrapErr(EntityTask, op, id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrapErr(EntityTask, op, id, err)
		}
		if n == 0 {
			return wrapErr(EntityTask, op, id, ErrNotFound)
		}
		return nil
	})
}

func (d *Database) CompleteTask(ctx context.Context, id int64) error {
	return d.execTask(ctx, "complete", id,
		"UPDATE tasks SET status = 'done', completed_at = ? WHERE id = ?", utcArg(time.Now()), id)
}

func (d *Database) ReopenTask(ctx context.Context, id int64) error {
	return d.execTask(ctx, "reopen", id,
		"UPDATE tasks SET status = 'open', completed_at = NULL WHERE id = ?", id)
}

func (d *Database) DeleteTask(ctx context.Context, id int64) error {
	return d.execTask(ctx, "delete", id, "DELETE FROM tasks WHERE id = ?", id)
}

// IncrementTaskPomodoros records one more completed work phase against the task.
func (d *Database) IncrementTaskPomodoros(ctx context.Context, id int64) error {
	return d.execTask(ctx, "increment pomodoros", id,
		"UPDATE tasks SET pomodoros = pomodoros + 1 WHERE id = ?", id)
}
