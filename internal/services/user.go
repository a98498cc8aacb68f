package services

import (
	"errors"

	"ost-panel/internal/config"
	"ost-panel/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	authService *AuthService
}

func NewUserService(cfg *config.Config) *UserService {
	return &UserService{
		authService: NewAuthService(cfg),
	}
}

// GetUsers returns all users
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := models.DB.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return users, nil
}

// GetUser returns a specific user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}

// CreateUser creates a new user
func (s *UserService) CreateUser(username, email, password string, role models.Role) (*models.User, error) {
	user, err := s.authService.CreateUser(username, email, password, role)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateRole changes a user's role
func (s *UserService) UpdateRole(id uint, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = role
	if err := models.DB.Save(&user).Error; err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}

// UpdatePassword resets a user's password. This is the admin path: no
// verification of the previous password.
func (s *UserService) UpdatePassword(id uint, newPassword string) error {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashedPassword, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	return models.DB.Save(&user).Error
}

// UpdateOwnPassword changes the caller's own password. The current password
// must verify against the stored hash; there is no bypass, not even for
// admins.
func (s *UserService) UpdateOwnPassword(user *models.User, currentPassword, newPassword string) error {
	var stored models.User
	if err := models.DB.First(&stored, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !s.authService.VerifyPassword(stored.PasswordHash, currentPassword) {
		return ErrWrongPassword
	}

	hashedPassword, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	stored.PasswordHash = hashedPassword
	return models.DB.Save(&stored).Error
}

// ToggleStatus flips a user's active flag. Users are never physically
// deleted, deactivation is the only way to retire an account.
func (s *UserService) ToggleStatus(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Activo = !user.Activo
	if err := models.DB.Save(&user).Error; err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}
