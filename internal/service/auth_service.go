package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Identity подтверждённая личность вызывающего, извлечённая из токена
type Identity struct {
	UserID   int64
	Username string
	Role     model.Role
}

// Claims состав JWT токена
type Claims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsTeacher bool
}

type LoginResult struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresIn int    `json:"expires_in"` // секунды
}

type AuthService struct {
	userRepo    *repository.UserRepository
	teacherRepo *repository.TeacherRepository
	secret      []byte
	tokenTTL    time.Duration
	logger      *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	teacherRepo *repository.TeacherRepository,
	secret string,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		teacherRepo: teacherRepo,
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Register регистрирует нового пользователя. Учителям сразу создаётся профиль.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	taken, err := s.userRepo.UsernameExists(ctx, params.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.userRepo.EmailExists(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := model.RoleStudent
	if params.IsTeacher {
		role = model.RoleTeacher
	}

	user := &model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Role:         role,
	}

	err = s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if params.IsTeacher {
		_, err = s.teacherRepo.CreateProfile(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("create teacher profile: %w", err)
		}
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)

	return user, nil
}

// Login проверяет пароль и выдаёт JWT токен
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role.String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return &LoginResult{
		Token:     token,
		Username:  user.Username,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

// VerifyToken проверяет подпись токена и возвращает личность вызывающего
func (s *AuthService) VerifyToken(tokenString string) (*Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:   userID,
		Username: claims.Username,
		Role:     role,
	}, nil
}
