package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hqdat/examhub/config"
	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// AuthClaims is the JWT payload: who is calling and with which role. The
// rest of the API trusts these as given.
type AuthClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(req dto.SignupRequest) (*dto.UserResponse, error)
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	users    UserService
	secret   []byte
}

func NewAuthService(userRepo repository.UserRepository, users UserService, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, users: users, secret: []byte(cfg.JWT.Secret)}
}

// Signup self-registers a student account. Admin accounts are created only
// through the admin user endpoints.
func (s *authService) Signup(req dto.SignupRequest) (*dto.UserResponse, error) {
	return s.users.CreateUser(dto.UserCreateRequest{
		Email:     req.Email,
		Password:  req.Password,
		Username:  req.Username,
		FullName:  req.FullName,
		StudentID: req.StudentID,
		Role:      model.RoleStudent,
	})
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("wrong email or password")
		}
		log.Error().Err(err).Msg("Login: failed to look up user")
		return nil, apperr.Internal("failed to look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.Unauthenticated("wrong email or password")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Login: failed to sign token")
		return nil, apperr.Internal("failed to issue token", err)
	}

	resp := dto.TokenResponse{Token: signed}
	copier.Copy(&resp.User, user)
	log.Info().Uint("userID", user.ID).Str("role", user.Role).Msg("User logged in")
	return &resp, nil
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(tokenString string, secret []byte) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}
	claims, ok := token.Claims.(*AuthClaims)
	if !ok {
		return nil, apperr.Unauthenticated("invalid token claims")
	}
	return claims, nil
}
