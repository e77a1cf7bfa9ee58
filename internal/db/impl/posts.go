package impl

import (
	"context"
	"database/sql"
	"time"

	"github.com/warblerhq/warbler/internal/domain"
)

const postColumns = `p.id, p.content, COALESCE(p.media, ''), COALESCE(p.parent_id, 0),
	COALESCE(p.quoted_id, 0), p.created_at,
	u.id, u.username, u.name, u.avatar,
	(SELECT COUNT(*) FROM post_likes WHERE post_id = p.id),
	(SELECT COUNT(*) FROM post_retweets WHERE post_id = p.id),
	(SELECT COUNT(*) FROM posts r WHERE r.parent_id = p.id)`

const postFrom = ` FROM posts p JOIN users u ON u.id = p.author_id`

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Valid: id != 0, Int64: id}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{Valid: s != "", String: s}
}

func (d *dbImpl) CreatePost(ctx context.Context, authorID int64, content, media string, parentID, quotedID int64) (domain.Post, error) {
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO posts(author_id, content, media, parent_id, quoted_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		authorID, content, nullableString(media), nullableID(parentID), nullableID(quotedID),
		time.Now().UTC())
	if err != nil {
		return domain.Post{}, d.HandleError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Post{}, d.HandleError(err)
	}
	return d.GetPost(ctx, id)
}

func scanPost(row interface{ Scan(...any) error }, p *domain.Post) error {
	return row.Scan(&p.ID, &p.Content, &p.Media, &p.ParentID, &p.QuotedID, &p.CreatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.Name, &p.Author.Avatar,
		&p.Likes, &p.Retweets, &p.Replies)
}

func (d *dbImpl) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	var p domain.Post
	err := scanPost(d.db.QueryRowContext(ctx,
		`SELECT `+postColumns+postFrom+` WHERE p.id = ?`, id), &p)
	if err != nil {
		return domain.Post{}, d.HandleError(err)
	}
	return p, nil
}

func (d *dbImpl) DeletePost(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return d.HandleError(err)
	}

	// Like and retweet rows cascade with the post; replies and quotes keep their now
	// dangling references and read paths treat those as "original unavailable".
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return d.HandleError(sql.ErrNoRows)
	}
	return nil
}

func (d *dbImpl) listPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, d.HandleError(err)
		}
		posts = append(posts, p)
	}
	return posts, d.HandleError(rows.Err())
}

func (d *dbImpl) GetPostsByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]domain.Post, error) {
	return d.listPosts(ctx,
		`SELECT `+postColumns+postFrom+`
		WHERE p.author_id = ?
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`,
		authorID, limit, offset)
}

func (d *dbImpl) CountPostsByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var total int64
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE author_id = ?`, authorID).Scan(&total)
	return total, d.HandleError(err)
}

func (d *dbImpl) GetReplies(ctx context.Context, parentID int64, limit, offset int) ([]domain.Post, error) {
	return d.listPosts(ctx,
		`SELECT `+postColumns+postFrom+`
		WHERE p.parent_id = ?
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`,
		parentID, limit, offset)
}

func (d *dbImpl) CountReplies(ctx context.Context, parentID int64) (int64, error) {
	var total int64
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE parent_id = ?`, parentID).Scan(&total)
	return total, d.HandleError(err)
}

func (d *dbImpl) GetFeedPosts(ctx context.Context, viewerID int64, limit, offset int) ([]domain.AnnotatedPost, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+postColumns+`,
		EXISTS(SELECT TRUE FROM post_likes WHERE post_id = p.id AND user_id = ?),
		EXISTS(SELECT TRUE FROM post_retweets WHERE post_id = p.id AND user_id = ?)`+
			postFrom+`
		WHERE p.author_id = ? OR p.author_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`,
		viewerID, viewerID, viewerID, viewerID, limit, offset)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	posts := []domain.AnnotatedPost{}
	for rows.Next() {
		var p domain.AnnotatedPost
		if err := rows.Scan(&p.ID, &p.Content, &p.Media, &p.ParentID, &p.QuotedID, &p.CreatedAt,
			&p.Author.ID, &p.Author.Username, &p.Author.Name, &p.Author.Avatar,
			&p.Likes, &p.Retweets, &p.Replies, &p.Liked, &p.Retweeted); err != nil {
			return nil, d.HandleError(err)
		}
		posts = append(posts, p)
	}
	return posts, d.HandleError(rows.Err())
}

func (d *dbImpl) CountFeedPosts(ctx context.Context, viewerID int64) (int64, error) {
	var total int64
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts
		WHERE author_id = ? OR author_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)`,
		viewerID, viewerID).Scan(&total)
	return total, d.HandleError(err)
}

func (d *dbImpl) GetPostsSince(ctx context.Context, since time.Time) ([]domain.Post, error) {
	return d.listPosts(ctx,
		`SELECT `+postColumns+postFrom+` WHERE p.created_at >= ?`, since)
}

func (d *dbImpl) GetAuthorPosts(ctx context.Context, authorID int64) ([]domain.Post, error) {
	return d.listPosts(ctx,
		`SELECT `+postColumns+postFrom+`
		WHERE p.author_id = ?
		ORDER BY p.created_at, p.id`,
		authorID)
}

func (d *dbImpl) HasLiked(ctx context.Context, postID, userID int64) (bool, error) {
	var liked bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT TRUE FROM post_likes WHERE post_id = ? AND user_id = ?)`,
		postID, userID).Scan(&liked)
	return liked, d.HandleError(err)
}

func (d *dbImpl) AddLike(ctx context.Context, postID, userID int64) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO post_likes(post_id, user_id) VALUES (?, ?)`, postID, userID)
	return d.HandleError(err)
}

func (d *dbImpl) RemoveLike(ctx context.Context, postID, userID int64) error {
	_, err := d.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	return d.HandleError(err)
}

func (d *dbImpl) HasRetweeted(ctx context.Context, postID, userID int64) (bool, error) {
	var retweeted bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT TRUE FROM post_retweets WHERE post_id = ? AND user_id = ?)`,
		postID, userID).Scan(&retweeted)
	return retweeted, d.HandleError(err)
}

func (d *dbImpl) AddRetweet(ctx context.Context, postID, userID int64) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO post_retweets(post_id, user_id) VALUES (?, ?)`, postID, userID)
	return d.HandleError(err)
}

func (d *dbImpl) RemoveRetweet(ctx context.Context, postID, userID int64) error {
	_, err := d.db.ExecContext(ctx,
		`DELETE FROM post_retweets WHERE post_id = ? AND user_id = ?`, postID, userID)
	return d.HandleError(err)
}
