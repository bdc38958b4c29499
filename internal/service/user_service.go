// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/repository"
	"health-dashboard-go/pkg/hash"
	"health-dashboard-go/pkg/log"
	"health-dashboard-go/pkg/token"

	"gorm.io/gorm"
)

const minPasswordLength = 6

// UserService 接口定义了所有与用户账号相关的业务操作。
type UserService interface {
	Register(email, password, fullName string) (*model.User, error)
	Login(email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	Logout(ctx context.Context, tokenString string) error
	GetByID(userID uint) (*model.User, error)
	// Authenticate 校验 access token、黑名单与用户是否存在。
	Authenticate(ctx context.Context, tokenString string) (*model.User, *token.CustomClaims, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtManager: jwtManager,
	}
}

// Register 处理用户注册的业务逻辑。
func (s *userService) Register(email, password, fullName string) (*model.User, error) {
	email = normalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	// 1. 检查邮箱是否已注册
	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. 创建新用户
	newUser := &model.User{
		Email:    email,
		Password: hashedPassword,
		Role:     model.RoleUser,
		FullName: strings.TrimSpace(fullName),
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}
	log.Infow("[UserService] 用户注册成功", "userId", newUser.ID)
	return newUser, nil
}

// Login 处理用户登录的业务逻辑。未知邮箱与错误密码返回同一个错误。
func (s *userService) Login(email, password string) (accessToken, refreshToken string, err error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if !hash.CheckPasswordHash(password, user.Password) {
		return "", "", ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

// RefreshToken 验证 refresh token 并签发新的 access token 和 refresh token。
func (s *userService) RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error) {
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil || claims.Type != token.TypeRefresh {
		return "", "", ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}
	return s.issueTokens(user)
}

// Logout 将 token 加入 Redis 黑名单，其剩余有效期作为 key 的过期时间。
func (s *userService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return ErrInvalidToken
	}
	return s.tokenRepo.Blacklist(ctx, tokenString, time.Until(claims.ExpiresAt.Time))
}

// GetByID 根据用户 ID 获取用户详细信息。
func (s *userService) GetByID(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, tokenString string) (*model.User, *token.CustomClaims, error) {
	claims, err := s.jwtManager.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	revoked, err := s.tokenRepo.IsBlacklisted(ctx, tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if revoked {
		return nil, nil, ErrInvalidToken
	}
	user, err := s.GetByID(claims.UserID)
	if errors.Is(err, ErrUserNotFound) {
		// 用户已被删除，token 随之失效
		return nil, nil, ErrInvalidToken
	}
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

func (s *userService) issueTokens(user *model.User) (string, string, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
