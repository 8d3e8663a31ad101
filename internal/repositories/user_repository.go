package repositories

import (
	"database/sql"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, email, COALESCE(photo_url,''), role, is_fraud, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhotoURL, &role, &u.IsFraud, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var u models.User
	var role, hash string
	err := r.DB.QueryRow(`
		SELECT id, name, email, COALESCE(photo_url,''), COALESCE(password_hash,''), role, is_fraud, created_at, updated_at
		FROM users
		WHERE email=?`, strings.TrimSpace(strings.ToLower(email)),
	).Scan(&u.ID, &u.Name, &u.Email, &u.PhotoURL, &hash, &role, &u.IsFraud, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, "", err
	}
	u.Role = domain.Role(role)
	return u, hash, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=?`, id))
}

func (r UserRepository) Create(name, email, photoURL, passwordHash string, role domain.Role) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (name, email, photo_url, password_hash, role)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(name), strings.TrimSpace(strings.ToLower(email)), photoURL, passwordHash, string(role))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateProfile applies PATCH-style updates via key presence.
func (r UserRepository) UpdateProfile(id int64, upd models.ProfileUpdate) error {
	sets := []string{}
	args := []any{}
	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.PhotoURL != nil {
		sets = append(sets, "photo_url=?")
		args = append(args, *upd.PhotoURL)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.Exec(`UPDATE users SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.DB.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) UpdateRole(id int64, role domain.Role) error {
	res, err := r.DB.Exec(`UPDATE users SET role=? WHERE id=?`, string(role), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r UserRepository) SetFraud(id int64, fraud bool) error {
	res, err := r.DB.Exec(`UPDATE users SET is_fraud=? WHERE id=?`, fraud, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IsFraudVendor reports the fraud flag for the given vendor email.
func (r UserRepository) IsFraudVendor(email string) (bool, error) {
	var fraud bool
	err := r.DB.QueryRow(`SELECT is_fraud FROM users WHERE email=?`,
		strings.TrimSpace(strings.ToLower(email))).Scan(&fraud)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return fraud, err
}
