package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

// create user service instance
func NewUserService() *UserService {
	return &UserService{
		db: database.GetDB(),
	}
}

// get user by id
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// get all users
func (s *UserService) GetAllUsers() ([]models.User, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a fully specified account. Admin-only operation; the
// caller picks the role and the account needs no email confirmation.
func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	if req.Password != req.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	if !utils.IsValidLogin(req.Login) {
		return nil, errors.New("invalid login format")
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, errors.New("invalid email format")
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, errors.New("password must be 8-64 characters with at least one letter and one number")
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		return nil, errors.New("invalid role. Valid roles are: user, admin")
	}

	var existing models.User
	if err := s.db.Where("login = ? OR email = ?", req.Login, req.Email).First(&existing).Error; err == nil {
		return nil, ErrLoginOrEmailTaken
	}

	user := &models.User{
		Login:          req.Login,
		FullName:       req.FullName,
		Email:          req.Email,
		EmailVerified:  true,
		ProfilePicture: defaultProfilePicture,
		Role:           req.Role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateAvatar stores a new avatar path for the user.
func (s *UserService) UpdateAvatar(userID uint, avatarPath string) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("profile_picture", avatarPath).Error; err != nil {
		return nil, err
	}
	user.ProfilePicture = avatarPath
	return user, nil
}

// UpdateProfile applies profile changes. The owner may change their login,
// full name and picture; an admin may only change the target's role.
func (s *UserService) UpdateProfile(requester *models.User, targetID uint, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin() && requester.ID != targetID {
		return nil, ErrPermissionDenied
	}

	if req.Login != "" && req.Login != user.Login {
		var existing models.User
		if err := s.db.Where("login = ?", req.Login).First(&existing).Error; err == nil {
			return nil, ErrLoginTaken
		}
	}

	if requester.IsAdmin() && requester.ID != targetID {
		if req.Role != "" {
			if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
				return nil, errors.New("invalid role. Valid roles are: user, admin")
			}
			user.Role = req.Role
		}
	} else {
		if req.Login != "" {
			user.Login = req.Login
		}
		if req.FullName != "" {
			user.FullName = req.FullName
		}
		if req.ProfilePicture != "" {
			user.ProfilePicture = req.ProfilePicture
		}
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account and everything it owns. Ownership or
// admin role is enforced by the route guard before this runs.
func (s *UserService) DeleteUser(id uint) error {
	if s.db == nil {
		return errors.New("database connection not initialized")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("author_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		for _, postID := range postIDs {
			if err := deletePostCascade(tx, postID); err != nil {
				return err
			}
		}

		if err := tx.Where("author_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}
