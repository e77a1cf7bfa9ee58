package impl

import (
	"context"
	"database/sql"

	"github.com/warblerhq/warbler/internal/domain"
)

// Counter recomputation always derives the value from the edge rows instead of
// incrementing, so a drifted counter is healed by the next successful mutation.
const (
	recomputeFollowers = `UPDATE users
		SET followers_count = (SELECT COUNT(*) FROM follows WHERE followee_id = users.id)
		WHERE id = ?`
	recomputeFollowing = `UPDATE users
		SET following_count = (SELECT COUNT(*) FROM follows WHERE follower_id = users.id)
		WHERE id = ?`
)

func (d *dbImpl) Follow(ctx context.Context, followerID, followeeID int64) error {
	return d.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO follows(follower_id, followee_id) VALUES (?, ?)`,
			followerID, followeeID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, recomputeFollowing, followerID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, recomputeFollowers, followeeID)
		return err
	})
}

func (d *dbImpl) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	return d.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
			followerID, followeeID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, recomputeFollowing, followerID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, recomputeFollowers, followeeID)
		return err
	})
}

func (d *dbImpl) AddFollow(ctx context.Context, followerID, followeeID int64) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO follows(follower_id, followee_id) VALUES (?, ?)`,
		followerID, followeeID)
	return d.HandleError(err)
}

func (d *dbImpl) RemoveFollow(ctx context.Context, followerID, followeeID int64) error {
	_, err := d.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID)
	return d.HandleError(err)
}

func (d *dbImpl) RecomputeFollowCounts(ctx context.Context, userID int64) error {
	if _, err := d.db.ExecContext(ctx, recomputeFollowers, userID); err != nil {
		return d.HandleError(err)
	}
	_, err := d.db.ExecContext(ctx, recomputeFollowing, userID)
	return d.HandleError(err)
}

func (d *dbImpl) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var follows bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT TRUE FROM follows WHERE follower_id = ? AND followee_id = ?)`,
		followerID, followeeID).Scan(&follows)
	return follows, d.HandleError(err)
}

func (d *dbImpl) listSummaries(ctx context.Context, query string, args ...any) ([]domain.Summary, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	summaries := []domain.Summary{}
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Username, &s.Name, &s.Avatar); err != nil {
			return nil, d.HandleError(err)
		}
		summaries = append(summaries, s)
	}
	return summaries, d.HandleError(rows.Err())
}

func (d *dbImpl) GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]domain.Summary, error) {
	return d.listSummaries(ctx,
		`SELECT u.id, u.username, u.name, u.avatar
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = ?
		ORDER BY f.created_at, u.id
		LIMIT ? OFFSET ?`,
		userID, limit, offset)
}

func (d *dbImpl) GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]domain.Summary, error) {
	return d.listSummaries(ctx,
		`SELECT u.id, u.username, u.name, u.avatar
		FROM follows f JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at, u.id
		LIMIT ? OFFSET ?`,
		userID, limit, offset)
}

func (d *dbImpl) FollowerTotal(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := d.db.QueryRowContext(ctx,
		`SELECT COALESCE(followers_count, (SELECT COUNT(*) FROM follows WHERE followee_id = users.id))
		FROM users WHERE id = ?`, userID).Scan(&total)
	return total, d.HandleError(err)
}

func (d *dbImpl) FollowingTotal(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := d.db.QueryRowContext(ctx,
		`SELECT COALESCE(following_count, (SELECT COUNT(*) FROM follows WHERE follower_id = users.id))
		FROM users WHERE id = ?`, userID).Scan(&total)
	return total, d.HandleError(err)
}
