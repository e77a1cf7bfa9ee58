package impl

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/warblerhq/warbler/internal/domain"
)

const userColumns = `id, username, email, name, bio, avatar,
	COALESCE(followers_count, (SELECT COUNT(*) FROM follows WHERE followee_id = users.id)),
	COALESCE(following_count, (SELECT COUNT(*) FROM follows WHERE follower_id = users.id)),
	created_at, updated_at`

func (d *dbImpl) CreateUser(ctx context.Context, name, username, email, password string) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO users(name, username, email, password) VALUES (?, ?, ?, ?)`,
		name, username, email, password)
	if err != nil {
		return 0, d.HandleError(err)
	}

	id, err := res.LastInsertId()
	return id, d.HandleError(err)
}

func (d *dbImpl) scanAuth(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.UserID, &a.Username, &a.Email, &a.Password)
	if err != nil {
		return domain.Account{}, d.HandleError(err)
	}
	return a, nil
}

func (d *dbImpl) GetAuthByUsername(ctx context.Context, username string) (domain.Account, error) {
	return d.scanAuth(d.db.QueryRowContext(ctx,
		`SELECT id, username, email, password FROM users WHERE username = ?`, username))
}

func (d *dbImpl) GetAuthByEmail(ctx context.Context, email string) (domain.Account, error) {
	return d.scanAuth(d.db.QueryRowContext(ctx,
		`SELECT id, username, email, password FROM users WHERE email = ?`, email))
}

func (d *dbImpl) GetAuthByID(ctx context.Context, id int64) (domain.Account, error) {
	return d.scanAuth(d.db.QueryRowContext(ctx,
		`SELECT id, username, email, password FROM users WHERE id = ?`, id))
}

func (d *dbImpl) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Bio, &u.Avatar,
		&u.FollowersCount, &u.FollowingCount, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, d.HandleError(err)
	}
	return u, nil
}

func (d *dbImpl) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return d.scanUser(d.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (d *dbImpl) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return d.scanUser(d.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (d *dbImpl) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	var taken bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT TRUE FROM users WHERE username = ? AND id != ?)`,
		username, excludeID).Scan(&taken)
	return taken, d.HandleError(err)
}

func (d *dbImpl) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (domain.User, error) {
	sets := []string{}
	args := []any{}

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *update.Bio)
	}
	if update.Avatar != nil {
		sets = append(sets, "avatar = ?")
		args = append(args, *update.Avatar)
	}
	if update.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *update.Username)
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	_, err := d.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.User{}, d.HandleError(err)
	}

	return d.GetUserByID(ctx, id)
}

func (d *dbImpl) SetPassword(ctx context.Context, id int64, password string) error {
	_, err := d.db.ExecContext(ctx,
		`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		password, id)
	return d.HandleError(err)
}

func (d *dbImpl) SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error {
	_, err := d.db.ExecContext(ctx,
		`UPDATE users SET reset_token = ?, reset_expires = ? WHERE id = ?`,
		tokenHash, expires, id)
	return d.HandleError(err)
}

func (d *dbImpl) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (int64, error) {
	var id int64
	err := d.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE reset_token = ? AND reset_expires > ?`,
		tokenHash, now).Scan(&id)
	return id, d.HandleError(err)
}

func (d *dbImpl) ResetPassword(ctx context.Context, id int64, password string) error {
	_, err := d.db.ExecContext(ctx,
		`UPDATE users
		SET password = ?, reset_token = NULL, reset_expires = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		password, id)
	return d.HandleError(err)
}
