package service

import (
	"testing"
	"time"

	"kioku/internal/config"
	"kioku/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) ListAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired() error {
	args := m.Called()
	return args.Error(0)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-at-least-32-characters!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	userRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register("testuser", "password123", "test@example.com")

	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	userRepo.AssertExpectations(t)
}

func TestRegister_UsernameExists(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	userRepo.On("FindByUsername", "taken").Return(&models.User{Username: "taken"}, nil)

	_, err := svc.Register("taken", "password123", "new@example.com")

	assert.ErrorIs(t, err, ErrNameInUse)
}

func TestRegister_EmailExists(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	userRepo.On("FindByUsername", "fresh").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "taken@example.com").Return(&models.User{Email: "taken@example.com"}, nil)

	_, err := svc.Register("fresh", "password123", "taken@example.com")

	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo.On("FindByUsername", "testuser").Return(&models.User{
		ID:       "user-1",
		Username: "testuser",
		Password: string(hash),
		Role:     "user",
	}, nil)
	tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, refreshToken, user, err := svc.Login("testuser", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, "user-1", user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo.On("FindByUsername", "testuser").Return(&models.User{
		Username: "testuser",
		Password: string(hash),
	}, nil)

	_, _, _, err = svc.Login("testuser", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	userRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login("ghost", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	userRepo.On("FindByUsername", "testuser").Return(&models.User{
		ID:       "user-1",
		Username: "testuser",
		Password: string(hash),
		Role:     "user",
	}, nil)
	tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, _, _, err := svc.Login("testuser", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(accessToken)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	_, err := svc.ValidateToken("not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccessToken_ExpiredTokenIsDeleted(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	tokenRepo.On("FindByToken", "stale").Return(&models.RefreshToken{
		ID:        "token-1",
		UserID:    "user-1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	tokenRepo.On("Delete", "token-1").Return(nil)

	_, err := svc.RefreshAccessToken("stale")

	require.Error(t, err)
	tokenRepo.AssertCalled(t, "Delete", "token-1")
}

func TestRefreshAccessToken_Valid(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	tokenRepo.On("FindByToken", "fresh").Return(&models.RefreshToken{
		ID:        "token-1",
		UserID:    "user-1",
		Token:     "fresh",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Username: "testuser"}, nil)

	accessToken, err := svc.RefreshAccessToken("fresh")

	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
}

func TestUpdateProfile_ChangesUsernameAndEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Username: "old", Email: "old@example.com"}, nil)
	userRepo.On("FindByUsername", "newname").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	newName := "newname"
	newEmail := "new@example.com"
	user, err := svc.UpdateProfile("user-1", ProfileUpdate{Username: &newName, Email: &newEmail})

	require.NoError(t, err)
	assert.Equal(t, "newname", user.Username)
	assert.Equal(t, "new@example.com", user.Email)
	userRepo.AssertExpectations(t)
}

func TestUpdateProfile_UsernameTakenByAnotherUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Username: "old"}, nil)
	userRepo.On("FindByUsername", "taken").Return(&models.User{ID: "user-2", Username: "taken"}, nil)

	taken := "taken"
	_, err := svc.UpdateProfile("user-1", ProfileUpdate{Username: &taken})

	assert.ErrorIs(t, err, ErrNameInUse)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateProfile_PasswordChangeNeedsCurrentPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)
	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Password: string(hash)}, nil)

	newPassword := "brand-new-password"
	_, err = svc.UpdateProfile("user-1", ProfileUpdate{Password: &newPassword, CurrentPassword: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateProfile_PasswordChangeRehashes(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)
	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Password: string(hash)}, nil)
	userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	newPassword := "brand-new-password"
	user, err := svc.UpdateProfile("user-1", ProfileUpdate{Password: &newPassword, CurrentPassword: "oldpassword"})

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("brand-new-password")))
}
