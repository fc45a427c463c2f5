package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/parkstack/service-parking/internal/domain"
)

// User is the aggregate root for an account.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	role         string
	phone        string
	createdAt    time.Time
}

// NewUser creates a user with a bcrypt-hashed password. Role defaults to
// driver when empty.
func NewUser(name, email, password, role, phone string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("name, email, and password are required")
	}
	if role == "" {
		role = "driver"
	}
	if role != "driver" && role != "admin" {
		return nil, domain.NewValidationError("role must be driver or admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: string(hash),
		role:         role,
		phone:        phone,
		createdAt:    time.Now().UTC(),
	}, nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() string         { return u.role }
func (u *User) Phone() string        { return u.phone }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// Reconstitute rebuilds a User from persisted data.
func Reconstitute(id uuid.UUID, name, email, passwordHash, role, phone string, createdAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		phone:        phone,
		createdAt:    createdAt,
	}
}
