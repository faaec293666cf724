package service

import (
	"errors"
	"fmt"

	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService is the admin-facing user directory: create, read, update,
// delete with cascading result removal.
type UserService interface {
	CreateUser(req dto.UserCreateRequest) (*dto.UserResponse, error)
	GetUser(id uint) (*dto.UserResponse, error)
	GetAllUsers() ([]dto.UserResponse, error)
	UpdateUser(id uint, req dto.UserCreateRequest) (*dto.UserResponse, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
}

func NewUserService(userRepo repository.UserRepository, resultRepo repository.ResultRepository) UserService {
	return &userService{userRepo: userRepo, resultRepo: resultRepo}
}

func (s *userService) CreateUser(req dto.UserCreateRequest) (*dto.UserResponse, error) {
	if err := s.checkUnique(req.Email, req.Username, req.StudentID, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := model.User{
		Email:        req.Email,
		Username:     req.Username,
		FullName:     req.FullName,
		StudentID:    req.StudentID,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("CreateUser: failed to persist user")
		return nil, apperr.Internal("failed to create user", err)
	}

	var resp dto.UserResponse
	copier.Copy(&resp, &user)
	return &resp, nil
}

func (s *userService) GetUser(id uint) (*dto.UserResponse, error) {
	user, err := s.load(id)
	if err != nil {
		return nil, err
	}
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) GetAllUsers() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("GetAllUsers: failed to fetch users")
		return nil, apperr.Internal("failed to fetch users", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		var resp dto.UserResponse
		copier.Copy(&resp, &users[i])
		out = append(out, resp)
	}
	return out, nil
}

func (s *userService) UpdateUser(id uint, req dto.UserCreateRequest) (*dto.UserResponse, error) {
	user, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(req.Email, req.Username, req.StudentID, id); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user.Email = req.Email
	user.Username = req.Username
	user.FullName = req.FullName
	user.StudentID = req.StudentID
	user.PasswordHash = string(hash)
	user.Role = req.Role

	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("UpdateUser: failed to persist user")
		return nil, apperr.Internal("failed to update user", err)
	}

	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

// DeleteUser removes the user and, first, every result they own.
func (s *userService) DeleteUser(id uint) error {
	if _, err := s.load(id); err != nil {
		return err
	}
	if err := s.resultRepo.DeleteByUserID(id); err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("DeleteUser: cascade delete of results failed")
		return apperr.Internal("failed to delete user results", err)
	}
	if err := s.userRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("DeleteUser: failed to delete user")
		return apperr.Internal("failed to delete user", err)
	}
	log.Info().Uint("userID", id).Msg("User deleted")
	return nil
}

func (s *userService) load(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("user %d not found", id))
		}
		log.Error().Err(err).Uint("userID", id).Msg("Failed to load user")
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

// checkUnique rejects email/username/student-id collisions with any user
// other than excludeID.
func (s *userService) checkUnique(email, username, studentID string, excludeID uint) error {
	type lookup struct {
		field string
		find  func() (*model.User, error)
	}
	lookups := []lookup{
		{"email", func() (*model.User, error) { return s.userRepo.FindByEmail(email) }},
		{"username", func() (*model.User, error) { return s.userRepo.FindByUsername(username) }},
		{"student_id", func() (*model.User, error) { return s.userRepo.FindByStudentID(studentID) }},
	}
	for _, l := range lookups {
		existing, err := l.find()
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return apperr.Internal("failed to check user uniqueness", err)
		}
		if existing.ID != excludeID {
			return apperr.Validation(fmt.Sprintf("%s already exists", l.field), l.field)
		}
	}
	return nil
}
