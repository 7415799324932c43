package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/devjournal/internal/models"
)

type ReactionRepository interface {
	Toggle(ctx context.Context, r *models.Reaction) (bool, models.Reactions, error)
	Exists(ctx context.Context, r *models.Reaction) (bool, error)
}

type reactionRepository struct {
	db *sql.DB
}

func NewReactionRepository(db *sql.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle flips the (post, user, type) membership and adjusts the counter on
// the post in one transaction. The post row is locked first so concurrent
// toggles on the same post are serialized. It reports whether the user has
// reacted after the toggle and the post's updated counters.
func (r *reactionRepository) Toggle(ctx context.Context, reaction *models.Reaction) (bool, models.Reactions, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return false, nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var counts models.Reactions
	err = tx.QueryRowContext(ctx, `SELECT reactions FROM posts WHERE id = $1 FOR UPDATE`, reaction.PostID).Scan(&counts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil, ErrNotFound
		}
		slog.Info(err.Error())
		return false, nil, err
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM reactions WHERE post_id = $1 AND user_id = $2 AND reaction_type = $3`,
		reaction.PostID, reaction.UserID, reaction.ReactionType)
	if err != nil {
		slog.Info(err.Error())
		return false, nil, err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, nil, err
	}

	hasReacted := removed == 0
	if hasReacted {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO reactions (post_id, user_id, reaction_type) VALUES ($1, $2, $3)`,
			reaction.PostID, reaction.UserID, reaction.ReactionType)
		if err != nil {
			slog.Info(err.Error())
			return false, nil, err
		}
		counts[reaction.ReactionType]++
	} else if counts[reaction.ReactionType] > 0 {
		counts[reaction.ReactionType]--
	}

	_, err = tx.ExecContext(ctx, `UPDATE posts SET reactions = $1 WHERE id = $2`, counts, reaction.PostID)
	if err != nil {
		slog.Info(err.Error())
		return false, nil, err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return false, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return hasReacted, counts, nil
}

func (r *reactionRepository) Exists(ctx context.Context, reaction *models.Reaction) (bool, error) {
	query := "SELECT 1 FROM reactions WHERE post_id = $1 AND user_id = $2 AND reaction_type = $3"

	var result int
	err := r.db.QueryRowContext(ctx, query, reaction.PostID, reaction.UserID, reaction.ReactionType).Scan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}
