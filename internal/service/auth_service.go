package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"github.com/sefazor/travelmarket-backend/pkg/bcrypt"
	jwtPkg "github.com/sefazor/travelmarket-backend/pkg/jwt"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TokenExpiryReset       = 15 * time.Minute
	TokenExpiryEmailVerify = 24 * time.Hour
)

type AuthService struct {
	userRepo  *repository.UserRepository
	tokens    *jwtPkg.Manager
	mailer    Mailer
	revoker   TokenRevoker
	jwtSecret []byte
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(
	userRepo *repository.UserRepository,
	tokens *jwtPkg.Manager,
	mailer Mailer,
	revoker TokenRevoker,
	jwtSecret string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		mailer:    mailer,
		revoker:   revoker,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates an inactive account that becomes usable once its email is verified.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil || role == models.RoleAdmin {
		return nil, validationf("role must be traveler or vendor")
	}

	exists, err := s.userRepo.UsernameExists(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationf("username already taken")
	}
	exists, err = s.userRepo.EmailExists(req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationf("email already registered")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  false,
	}
	profile := &models.Profile{Role: role}
	verificationToken := uuid.NewString()
	profile.IssueVerificationToken(verificationToken, s.now())

	var vendor *models.Vendor
	if role == models.RoleVendor {
		vendor = &models.Vendor{
			Name:        req.VendorName,
			Description: req.VendorDescription,
			Website:     req.Website,
			Status:      models.VendorStatusPending,
		}
	}

	if err := s.userRepo.CreateAccount(user, profile, vendor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationf("username or email already registered")
		}
		return nil, err
	}

	// The account exists either way; a failed send can be retried through resend.
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.FullName(), utils.EncodeUID(user.ID), verificationToken); err != nil {
		s.logger.Error("verification email not sent", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("account registered", zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *AuthService) VerifyEmail(uidb64, token string) error {
	user, err := s.userFromUID(uidb64)
	if err != nil {
		return validationf("invalid verification link")
	}

	profile := user.Profile
	if profile == nil || profile.IsVerified || profile.VerificationToken == nil || *profile.VerificationToken != token {
		return validationf("invalid or already used verification link")
	}
	if profile.TokenCreatedAt == nil || s.now().Sub(*profile.TokenCreatedAt) > TokenExpiryEmailVerify {
		return validationf("verification link has expired")
	}

	profile.MarkVerified()
	user.IsActive = true
	if err := s.userRepo.SaveWithProfile(user, profile); err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	s.logger.Info("email verified", zap.Uint("user_id", user.ID))
	return nil
}

func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	profile := user.Profile
	if profile == nil {
		return validationf("account has no profile")
	}
	if profile.IsVerified {
		return validationf("email already verified")
	}

	token := uuid.NewString()
	profile.IssueVerificationToken(token, s.now())
	if err := s.userRepo.SaveWithProfile(user, profile); err != nil {
		return err
	}

	return s.mailer.SendVerificationEmail(ctx, user.Email, user.FullName(), utils.EncodeUID(user.ID), token)
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	token, _, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// Logout makes the presented token unusable for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *jwtPkg.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return validationf("token cannot be revoked")
	}
	return s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// RequestPasswordReset never reveals whether the address belongs to an account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.resetToken(user)
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordResetEmail(ctx, user.Email, utils.EncodeUID(user.ID), token)
}

func (s *AuthService) ResetPassword(uidb64, token, newPassword string) error {
	user, err := s.userFromUID(uidb64)
	if err != nil {
		return validationf("invalid reset link")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.resetKey(user), nil
	})
	if err != nil || !parsed.Valid {
		return validationf("invalid or expired reset link")
	}
	if sub, _ := claims["sub"].(string); sub != strconv.FormatUint(uint64(user.ID), 10) {
		return validationf("invalid or expired reset link")
	}
	if typ, _ := claims["type"].(string); typ != "password_reset" {
		return validationf("invalid or expired reset link")
	}

	hashedPassword, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hashedPassword); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.Uint("user_id", user.ID))
	return nil
}

// resetKey mixes the current password hash into the key so a used link stops verifying.
func (s *AuthService) resetKey(user *models.User) []byte {
	key := make([]byte, 0, len(s.jwtSecret)+len(user.Password))
	key = append(key, s.jwtSecret...)
	return append(key, user.Password...)
}

func (s *AuthService) resetToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"exp":  now.Add(TokenExpiryReset).Unix(),
		"iat":  now.Unix(),
		"type": "password_reset",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.resetKey(user))
}

func (s *AuthService) userFromUID(uidb64 string) (*models.User, error) {
	id, err := utils.DecodeUID(uidb64)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(id)
}
