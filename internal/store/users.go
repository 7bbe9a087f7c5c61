package store

import (
	"database/sql"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
)

func (s *SQLStore) CreateUser(u *models.User) error {
	query := `INSERT INTO users (id, username, email, password, role, instagram, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.DB.Exec(query, u.ID, u.Username, u.Email, u.Password, u.Role, u.Instagram, u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLStore) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, username, email, password, role, instagram, created_at FROM users WHERE LOWER(email) = LOWER(?)`
	return s.scanUser(s.DB.QueryRow(query, email))
}

func (s *SQLStore) GetUserByID(id string) (*models.User, error) {
	query := `SELECT id, username, email, password, role, instagram, created_at FROM users WHERE id = ?`
	return s.scanUser(s.DB.QueryRow(query, id))
}

func (s *SQLStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.Instagram, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) UpdateUserProfile(id, username, instagram string) error {
	query := `UPDATE users SET username = ?, instagram = ? WHERE id = ?`
	res, err := s.DB.Exec(query, username, instagram, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
