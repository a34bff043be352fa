package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonfaria/userapi/internal/apperrors"
	usermodel "github.com/claytonfaria/userapi/internal/models/user"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

const userColumns = "id, first_name, last_name, email, gender, age"

func scanUser(row pgx.Row) (*usermodel.User, error) {
	var u usermodel.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Gender,
		&u.Age,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*usermodel.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStoreError("list users", err)
	}
	defer rows.Close()

	var users []*usermodel.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("scan user", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate users", err)
	}

	return users, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*usermodel.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	u, err := scanUser(s.db.QueryRow(ctx, query, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}

	if err != nil {
		return nil, apperrors.NewStoreError("get user", err)
	}

	return u, nil
}

// Create inserts the row, then re-reads it by the generated id so the
// response is the persisted representation rather than whatever the
// driver echoed back. A missing row on re-read means the store is
// inconsistent and the request fails with ErrCreateFailed.
func (s *PostgresStore) Create(ctx context.Context, req *usermodel.CreateUserRequest) (*usermodel.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, gender, age)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Gender,
		req.Age,
	).Scan(&id)

	if err != nil {
		return nil, apperrors.NewStoreError("insert user", err)
	}

	created, err := s.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrCreateFailed
	}
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update locks the row, applies only the fields present in req, and
// re-reads inside the same transaction. The transaction rolls back if
// the request context is cancelled mid-flight, so a client that saw a
// timeout never has a half-applied write.
func (s *PostgresStore) Update(ctx context.Context, id int64, req *usermodel.UpdateUserRequest) (*usermodel.User, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("begin tx", err)
	}
	defer tx.Rollback(ctx)

	current, err := scanUser(tx.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewStoreError("lock user", err)
	}

	if req.FirstName != nil {
		current.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		current.LastName = *req.LastName
	}
	if req.Email != nil {
		current.Email = req.Email
	}
	if req.Gender != nil {
		current.Gender = *req.Gender
	}
	if req.Age != nil {
		current.Age = req.Age
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, gender = $4, age = $5
		WHERE id = $6
	`,
		current.FirstName,
		current.LastName,
		current.Email,
		current.Gender,
		current.Age,
		id,
	)
	if err != nil {
		return nil, apperrors.NewStoreError("update user", err)
	}

	updated, err := scanUser(tx.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
	if err != nil {
		return nil, apperrors.NewStoreError("reread user", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.NewStoreError("commit update", err)
	}

	return updated, nil
}

// Delete checks existence and removes the row in one transaction.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperrors.NewStoreError("begin tx", err)
	}
	defer tx.Rollback(ctx)

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.NewStoreError("lock user", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return apperrors.NewStoreError("delete user", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewStoreError("commit delete", err)
	}

	return nil
}

var _ UserStore = (*PostgresStore)(nil)
