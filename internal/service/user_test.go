package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/souravcsewala/ads-ecom-backend/internal/auth"
	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/event"
	"github.com/souravcsewala/ads-ecom-backend/internal/media"
	"github.com/souravcsewala/ads-ecom-backend/internal/storage"
	"github.com/souravcsewala/ads-ecom-backend/internal/storage/memory"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
	pkgkafka "github.com/souravcsewala/ads-ecom-backend/pkg/kafka"
	"github.com/souravcsewala/ads-ecom-backend/pkg/pagination"
)

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role string, params pagination.Params) ([]domain.User, int, error) {
	args := m.Called(ctx, role, params)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock Reset Token Store ---

type mockResetTokenStore struct {
	mock.Mock
}

func (m *mockResetTokenStore) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenHash, userID, ttl)
	return args.Error(0)
}

func (m *mockResetTokenStore) Consume(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-for-testing", 15*time.Minute)
}

func newTestEventProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func newTestGateway() (*storage.Gateway, *memory.Store) {
	store := memory.New("https://media.test")
	return storage.NewGateway(store, "test-bucket", "us-east-1", newTestLogger()), store
}

func newTestSigner(gateway *storage.Gateway) *media.Signer {
	return media.NewSigner(gateway, 0)
}

func newTestUserService(userRepo *mockUserRepository, resetTokens *mockResetTokenStore) (*UserService, *memory.Store) {
	gateway, store := newTestGateway()
	return NewUserService(
		userRepo,
		resetTokens,
		newTestJWTManager(),
		gateway,
		newTestSigner(gateway),
		newTestEventProducer(),
		newTestLogger(),
	), store
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

// spoolFile writes content to a temp file and returns its path.
func spoolFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// hashForTest creates a bcrypt hash with cost 4 for fast tests.
func hashForTest(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	if err != nil {
		panic(err)
	}
	return string(h)
}

func sampleCustomer() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           "u-1",
		FullName:     "Alice Smith",
		Email:        "alice@example.com",
		Phone:        "+1234567890",
		PasswordHash: hashForTest("SecurePass123"),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// --- Register Tests ---

func TestRegister_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, token, err := svc.Register(ctx, RegisterInput{
		FullName: "Alice Smith",
		Email:    "alice@example.com",
		Phone:    "+1234567890",
		Password: "SecurePass123",
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.IsBlocked)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "SecurePass123", user.PasswordHash)
	assert.NotZero(t, user.CreatedAt)

	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "email", "alice@example.com"))

	user, token, err := svc.Register(ctx, RegisterInput{
		FullName: "Alice Smith",
		Email:    "alice@example.com",
		Password: "SecurePass123",
	})

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	userRepo.AssertExpectations(t)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _ := newTestUserService(new(mockUserRepository), new(mockResetTokenStore))

	user, token, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Alice Smith",
		Email:    "alice@example.com",
		Password: "short",
	})

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	existing := sampleCustomer()
	userRepo.On("GetByEmail", ctx, existing.Email).Return(existing, nil)

	user, token, err := svc.Login(ctx, LoginInput{Email: existing.Email, Password: "SecurePass123"})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.NotEmpty(t, token)
	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	existing := sampleCustomer()
	userRepo.On("GetByEmail", ctx, existing.Email).Return(existing, nil)

	user, token, err := svc.Login(ctx, LoginInput{Email: existing.Email, Password: "wrong-password"})

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_UnknownEmail_SameErrorAsWrongPassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, apperrors.NotFound("user", "nobody@example.com"))

	_, _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever-pass"})

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_BlockedAccount(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	blocked := sampleCustomer()
	blocked.IsBlocked = true
	userRepo.On("GetByEmail", ctx, blocked.Email).Return(blocked, nil)

	_, _, err := svc.Login(ctx, LoginInput{Email: blocked.Email, Password: "SecurePass123"})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAdminLogin_RejectsCustomerCredentials(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	customer := sampleCustomer()
	userRepo.On("GetByEmail", ctx, customer.Email).Return(customer, nil)

	_, _, err := svc.AdminLogin(ctx, LoginInput{Email: customer.Email, Password: "SecurePass123"})

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAdminLogin_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	admin := sampleCustomer()
	admin.Role = domain.RoleAdmin
	userRepo.On("GetByEmail", ctx, admin.Email).Return(admin, nil)

	user, token, err := svc.AdminLogin(ctx, LoginInput{Email: admin.Email, Password: "SecurePass123"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEmpty(t, token)
}

// --- Password Reset Tests ---

func TestForgotPassword_StoresHashNotToken(t *testing.T) {
	userRepo := new(mockUserRepository)
	resetTokens := new(mockResetTokenStore)
	svc, _ := newTestUserService(userRepo, resetTokens)
	ctx := context.Background()

	existing := sampleCustomer()
	userRepo.On("GetByEmail", ctx, existing.Email).Return(existing, nil)
	resetTokens.On("Save", ctx, mock.MatchedBy(func(hash string) bool {
		// sha256 hex digest, never the raw token.
		return len(hash) == 64
	}), existing.ID, resetTokenTTL).Return(nil)

	err := svc.ForgotPassword(ctx, existing.Email)

	require.NoError(t, err)
	resetTokens.AssertExpectations(t)
}

func TestResetPassword_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	resetTokens := new(mockResetTokenStore)
	svc, _ := newTestUserService(userRepo, resetTokens)
	ctx := context.Background()

	existing := sampleCustomer()
	oldHash := existing.PasswordHash

	resetTokens.On("Consume", ctx, hashToken("raw-token")).Return(existing.ID, nil)
	userRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	err := svc.ResetPassword(ctx, "raw-token", "NewSecurePass456")

	require.NoError(t, err)
	assert.NotEqual(t, oldHash, existing.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte("NewSecurePass456")))
	userRepo.AssertExpectations(t)
	resetTokens.AssertExpectations(t)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	resetTokens := new(mockResetTokenStore)
	svc, _ := newTestUserService(new(mockUserRepository), resetTokens)
	ctx := context.Background()

	resetTokens.On("Consume", ctx, mock.AnythingOfType("string")).Return("", apperrors.ErrNotFound)

	err := svc.ResetPassword(ctx, "expired-token", "NewSecurePass456")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- Profile Tests ---

func TestUpdateProfileImage_ReplacesKeyAndDeletesOld(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, store := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	existing := sampleCustomer()
	existing.ProfileImageKey = "profiles/u-1/old-key-avatar.png"
	userRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	file := storage.FileInput{
		TempPath:     spoolFile(t, "avatar.png", "png-bytes"),
		OriginalName: "avatar.png",
		ContentType:  "image/png",
		Size:         9,
	}

	user, err := svc.UpdateProfileImage(ctx, existing.ID, file)

	require.NoError(t, err)
	assert.True(t, len(user.ProfileImageKey) > len("profiles/u-1/"))
	assert.Contains(t, user.ProfileImageKey, "profiles/u-1/")
	assert.True(t, store.Has(user.ProfileImageKey))
	userRepo.AssertExpectations(t)
}

// --- Admin Management Tests ---

func TestDemoteAdmin_RejectsSelfDemotion(t *testing.T) {
	svc, _ := newTestUserService(new(mockUserRepository), new(mockResetTokenStore))

	user, err := svc.DemoteAdmin(context.Background(), "admin-1", "admin-1")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestDemoteAdmin_SetsUserRole(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	admin := sampleCustomer()
	admin.ID = "admin-2"
	admin.Role = domain.RoleAdmin
	userRepo.On("GetByID", ctx, admin.ID).Return(admin, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.DemoteAdmin(ctx, "admin-1", admin.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	userRepo.AssertExpectations(t)
}

func TestCreateAdmin_SetsAdminRole(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc, _ := newTestUserService(userRepo, new(mockResetTokenStore))
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	admin, err := svc.CreateAdmin(ctx, RegisterInput{
		FullName: "Bob Admin",
		Email:    "bob@example.com",
		Password: "SecurePass123",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	userRepo.AssertExpectations(t)
}
