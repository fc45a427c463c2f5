package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkstack/service-parking/internal/domain"
	userDomain "github.com/parkstack/service-parking/internal/domain/user"
)

// UserModel is the GORM persistence model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'driver'"`
	Phone        string    `gorm:"type:varchar(50)"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserRepositoryImpl is the GORM-based implementation of UserRepository.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// FindByID retrieves a user by its unique ID.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", id.String())
		}
		return nil, err
	}
	return userToDomain(&model), nil
}

// FindByEmail retrieves a user by email.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", email)
		}
		return nil, err
	}
	return userToDomain(&model), nil
}

// Save persists a new user aggregate. Duplicate emails surface as a
// conflict error.
func (r *UserRepositoryImpl) Save(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(userToModel(u)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return domain.NewConflictError("email already registered")
		}
		return err
	}
	return nil
}

// userToDomain maps a UserModel to the domain User aggregate.
func userToDomain(model *UserModel) *userDomain.User {
	return userDomain.Reconstitute(
		model.ID,
		model.Name,
		model.Email,
		model.PasswordHash,
		model.Role,
		model.Phone,
		model.CreatedAt,
	)
}

// userToModel maps a domain User aggregate to a UserModel for persistence.
func userToModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role(),
		Phone:        u.Phone(),
		CreatedAt:    u.CreatedAt(),
	}
}
