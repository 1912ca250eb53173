package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/estampaviva/estampa-api/internal/models"
)

// AdminUserRepository handles data access for admin accounts.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByEmail returns the active admin with the given email.
func (r *AdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	const q = `SELECT * FROM admin_users WHERE email = $1 AND is_active = true LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var user models.AdminUser
	if err := stmt.Get(&user, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &user, nil
}
