package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/souravcsewala/ads-ecom-backend/internal/auth"
	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/event"
	"github.com/souravcsewala/ads-ecom-backend/internal/media"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository"
	"github.com/souravcsewala/ads-ecom-backend/internal/storage"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
	"github.com/souravcsewala/ads-ecom-backend/pkg/pagination"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// resetTokenTTL is how long a password reset token stays valid.
const resetTokenTTL = 15 * time.Minute

// UserService implements the business logic for user and auth operations.
type UserService struct {
	userRepo    repository.UserRepository
	resetTokens repository.ResetTokenStore
	jwtManager  *auth.JWTManager
	gateway     *storage.Gateway
	signer      *media.Signer
	producer    *event.Producer
	logger      *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	resetTokens repository.ResetTokenStore,
	jwtManager *auth.JWTManager,
	gateway *storage.Gateway,
	signer *media.Signer,
	producer *event.Producer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		jwtManager:  jwtManager,
		gateway:     gateway,
		signer:      signer,
		producer:    producer,
		logger:      logger,
	}
}

// RegisterInput holds the parameters for registering a new account.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// LoginInput holds the parameters for login.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput holds the parameters for updating a profile.
type UpdateProfileInput struct {
	FullName *string
	Phone    *string
}

// UpdateUserInput holds the parameters admins use to update any account.
type UpdateUserInput struct {
	FullName  *string
	Phone     *string
	IsBlocked *bool
}

// ProfileView is a user projection with the profile image signed for display.
type ProfileView struct {
	User            *domain.User `json:"user"`
	ProfileImageURL string       `json:"profile_image_url,omitempty"`
}

// Register creates a new account, hashes the password, and returns an
// access token.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if input.FullName == "" {
		return nil, "", apperrors.InvalidInput("fullname is required")
	}
	if input.Email == "" {
		return nil, "", apperrors.InvalidInput("email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, token, nil
}

// Login authenticates a user with email and password.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	return s.login(ctx, input, "")
}

// AdminLogin authenticates an admin account. Non-admin credentials are
// rejected as if they were invalid.
func (s *UserService) AdminLogin(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	return s.login(ctx, input, domain.RoleAdmin)
}

func (s *UserService) login(ctx context.Context, input LoginInput, requiredRole string) (*domain.User, string, error) {
	if input.Email == "" {
		return nil, "", apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, "", apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	if requiredRole != "" && user.Role != requiredRole {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	if user.IsBlocked {
		return nil, "", apperrors.Forbidden("account is blocked")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)

	return user, token, nil
}

// GetProfile returns the user's profile with the image signed for display.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		User:            user,
		ProfileImageURL: s.signer.UserProfileImageURL(ctx, *user),
	}, nil
}

// UpdateProfile applies partial profile changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}

// UpdateProfileImage uploads a new profile image and stores its key. The
// previous image is deleted best-effort.
func (s *UserService) UpdateProfileImage(ctx context.Context, userID string, file storage.FileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Upload(ctx, file, "profiles/"+userID)
	if err != nil {
		return nil, err
	}

	oldKey := user.ProfileImageKey
	user.ProfileImageKey = result.Key

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile image key: %w", err)
	}

	if oldKey != "" {
		if err := s.gateway.Delete(ctx, oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete old profile image",
				slog.String("key", oldKey),
				slog.String("error", err.Error()),
			)
		}
	}

	return user, nil
}

// ForgotPassword generates a reset token, stores its hash with a short TTL
// and hands the raw token to the notification pipeline.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.InvalidInput("email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.resetTokens.Save(ctx, hashToken(token), user.ID, resetTokenTTL); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	// Email delivery happens in the notification consumer; a publish
	// failure is logged and the stored token simply expires unused.
	if err := s.producer.PublishPasswordResetRequested(ctx, user, token); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish password_reset_requested event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "password reset requested",
		slog.String("user_id", user.ID),
	)

	return nil
}

// ResetPassword verifies a reset token and updates the password.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperrors.InvalidInput("reset token is required")
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	userID, err := s.resetTokens.Consume(ctx, hashToken(token))
	if err != nil {
		return apperrors.InvalidInput("invalid or expired reset token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset completed",
		slog.String("user_id", user.ID),
	)

	return nil
}

// --- Admin user management ---

// ListUsers returns a page of customer accounts.
func (s *UserService) ListUsers(ctx context.Context, params pagination.Params) (*pagination.Result[domain.User], error) {
	users, total, err := s.userRepo.ListByRole(ctx, domain.RoleUser, params)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(users, total, params)
	return &result, nil
}

// GetUser returns a single account by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies admin changes to any account.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.IsBlocked != nil {
		user.IsBlocked = *input.IsBlocked
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a customer account.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// CreateAdmin registers a new admin account.
func (s *UserService) CreateAdmin(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.FullName == "" {
		return nil, apperrors.InvalidInput("fullname is required")
	}
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		ID:           uuid.New().String(),
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.logger.InfoContext(ctx, "admin created",
		slog.String("admin_id", admin.ID),
	)

	return admin, nil
}

// ListAdmins returns a page of admin accounts.
func (s *UserService) ListAdmins(ctx context.Context, params pagination.Params) (*pagination.Result[domain.User], error) {
	admins, total, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin, params)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(admins, total, params)
	return &result, nil
}

// DemoteAdmin strips the admin role instead of deleting the account, so
// order history stays attached. Admins cannot demote themselves.
func (s *UserService) DemoteAdmin(ctx context.Context, actorID, adminID string) (*domain.User, error) {
	if actorID == adminID {
		return nil, apperrors.InvalidInput("cannot demote your own account")
	}

	user, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleAdmin {
		return nil, apperrors.InvalidInput("account is not an admin")
	}

	user.Role = domain.RoleUser
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("demote admin: %w", err)
	}

	s.logger.InfoContext(ctx, "admin demoted",
		slog.String("admin_id", adminID),
		slog.String("actor_id", actorID),
	)

	return user, nil
}

// hashToken returns the hex-encoded sha256 hash of a token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
