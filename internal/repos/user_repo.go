package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopapi/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user. The unique index on LOWER(email) makes a
// duplicate registration fail at the database.
func (r *UserRepo) Create(name, email, hash string) (*domain.User, error) {
	res, err := r.DB.Exec(`INSERT INTO users(name,email,password_hash) VALUES(?,?,?)`, name, email, hash)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Name: name, Email: email, Hash: hash}, nil
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,name,email,password_hash FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
