package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkwise/linkwise/internal/model"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

const postColumns = `id, url, title, description, owner_id,
	trusted_count, suspicious_count, untrusted_count,
	total_votes, last_vote_at, created_at`

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// FetchPostsPage returns one page of posts using keyset pagination. It
// fetches one row beyond the page size to decide HasMore without a count.
func (s *Postgres) FetchPostsPage(ctx context.Context, sort model.SortMode, size int, cursor string) (model.PostsPage, error) {
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	var args []any

	if cursor != "" {
		cur, err := decodeCursor(cursor)
		if err != nil {
			return model.PostsPage{}, err
		}
		switch sort {
		case model.SortTop:
			query += ` WHERE (total_votes, created_at, id) < ($1, $2, $3)`
			args = append(args, cur.TotalVotes, cur.CreatedAt, cur.ID)
		default:
			query += ` WHERE (created_at, id) < ($1, $2)`
			args = append(args, cur.CreatedAt, cur.ID)
		}
	}

	switch sort {
	case model.SortTop:
		query += ` ORDER BY total_votes DESC, created_at DESC, id DESC`
	default:
		query += ` ORDER BY created_at DESC, id DESC`
	}
	query += fmt.Sprintf(` LIMIT %d`, size+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return model.PostsPage{}, mapError("fetch posts page", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return model.PostsPage{}, mapError("fetch posts page", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return model.PostsPage{}, mapError("fetch posts page", err)
	}

	page := model.PostsPage{Posts: posts}
	if len(posts) > size {
		page.Posts = posts[:size]
		page.HasMore = true
		page.NextCursor = encodeCursor(page.Posts[size-1])
	}
	return page, nil
}

// FetchStats returns global counters plus per-category vote totals summed
// from the post aggregates.
func (s *Postgres) FetchStats(ctx context.Context) (model.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM posts)    AS total_posts,
			(SELECT COUNT(*) FROM votes)    AS total_votes,
			(SELECT COUNT(*) FROM comments) AS total_comments,
			(SELECT COUNT(*) FROM users)    AS total_users,
			COALESCE((SELECT SUM(trusted_count) FROM posts), 0),
			COALESCE((SELECT SUM(suspicious_count) FROM posts), 0),
			COALESCE((SELECT SUM(untrusted_count) FROM posts), 0)`

	var stats model.Stats
	var trusted, suspicious, untrusted int
	err := s.pool.QueryRow(ctx, query).Scan(
		&stats.TotalPosts, &stats.TotalVotes, &stats.TotalComments, &stats.TotalUsers,
		&trusted, &suspicious, &untrusted,
	)
	if err != nil {
		return model.Stats{}, mapError("fetch stats", err)
	}

	stats.VotesByCategory = map[string]int{
		model.CategoryTrusted.String():    trusted,
		model.CategorySuspicious.String(): suspicious,
		model.CategoryUntrusted.String():  untrusted,
	}
	return stats, nil
}

// CreatePost inserts a newly submitted link with zeroed aggregates.
func (s *Postgres) CreatePost(ctx context.Context, np model.NewPost) (model.Post, error) {
	query := `
		INSERT INTO posts (id, url, title, description, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + postColumns

	row := s.pool.QueryRow(ctx, query, uuid.NewString(), np.URL, np.Title, np.Description, np.OwnerID)
	p, err := scanPost(row)
	if err != nil {
		return model.Post{}, mapError("create post", err)
	}
	return p, nil
}

// WithTx runs fn in a transaction, committing only if fn returns nil.
func (s *Postgres) WithTx(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return mapError("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit tx", err)
	}
	return nil
}

// pgTx implements Tx on an open pgx transaction.
type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) GetPost(ctx context.Context, postID string) (model.Post, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, postID)
	p, err := scanPost(row)
	if err != nil {
		return model.Post{}, mapError("get post", err)
	}
	return p, nil
}

func (t *pgTx) GetVote(ctx context.Context, postID, voterID string) (*model.Vote, error) {
	var v model.Vote
	err := t.tx.QueryRow(ctx, `
		SELECT id, post_id, voter_id, category, created_at, updated_at
		FROM votes
		WHERE post_id = $1 AND voter_id = $2`,
		postID, voterID).Scan(&v.ID, &v.PostID, &v.VoterID, &v.Category, &v.CreatedAt, &v.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get vote", err)
	}
	return &v, nil
}

func (t *pgTx) WriteVote(ctx context.Context, v *model.Vote) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO votes (id, post_id, voter_id, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (post_id, voter_id) DO UPDATE
		SET category = EXCLUDED.category, updated_at = EXCLUDED.updated_at`,
		v.ID, v.PostID, v.VoterID, v.Category, v.CreatedAt, v.UpdatedAt)
	return mapError("write vote", err)
}

func (t *pgTx) UpdatePostAggregate(ctx context.Context, postID string, delta model.AggregateDelta) (model.VoteAggregate, error) {
	var agg model.VoteAggregate
	err := t.tx.QueryRow(ctx, `
		UPDATE posts
		SET trusted_count    = trusted_count + $1,
		    suspicious_count = suspicious_count + $2,
		    untrusted_count  = untrusted_count + $3,
		    total_votes      = total_votes + $4,
		    last_vote_at     = NOW()
		WHERE id = $5
		RETURNING id, trusted_count, suspicious_count, untrusted_count, total_votes, last_vote_at`,
		delta.Trusted, delta.Suspicious, delta.Untrusted, delta.Total, postID).Scan(
		&agg.PostID, &agg.Counts.Trusted, &agg.Counts.Suspicious, &agg.Counts.Untrusted,
		&agg.TotalVotes, &agg.LastVoteAt,
	)
	if err != nil {
		return model.VoteAggregate{}, mapError("update post aggregate", err)
	}
	return agg, nil
}

func scanPost(row pgx.Row) (model.Post, error) {
	var p model.Post
	var lastVote *time.Time
	err := row.Scan(
		&p.ID, &p.URL, &p.Title, &p.Description, &p.OwnerID,
		&p.Counts.Trusted, &p.Counts.Suspicious, &p.Counts.Untrusted,
		&p.TotalVotes, &lastVote, &p.CreatedAt,
	)
	if err != nil {
		return model.Post{}, err
	}
	p.LastVoteAt = lastVote
	return p, nil
}
