package auth

import (
	"errors"
	"testing"
	"time"

	"dentapp/internal/domain/session"
	"dentapp/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(u *user.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id uint) (*user.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*user.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*user.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindAll() ([]user.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) FindActive() ([]user.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(role user.Role) ([]user.User, error) {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(u *user.User) error {
	args := m.Called(u)
	return args.Error(0)
}

// MockSessionService is a mock implementation of session.Service
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(sessionID string, userID uint, refreshToken, ip, userAgent string, ttl time.Duration) (*session.Session, error) {
	args := m.Called(sessionID, userID, refreshToken, ip, userAgent, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) FindActiveByRefreshToken(refreshToken string) (*session.Session, error) {
	args := m.Called(refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) FindActiveByUserID(userID uint) ([]session.Session, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]session.Session), args.Error(1)
}

func (m *MockSessionService) Touch(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockSessionService) Revoke(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockSessionService) RevokeAll(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockSessionService) CleanupExpired(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(t *testing.T) (Service, *MockUserRepository, *MockSessionService, *TokenCodec) {
	t.Helper()
	mockUsers := new(MockUserRepository)
	mockSessions := new(MockSessionService)
	codec := newTestCodec(t)
	return NewService(mockUsers, mockSessions, codec), mockUsers, mockSessions, codec
}

func testUser(t *testing.T, password string) *user.User {
	t.Helper()
	hashed, err := user.HashPassword(password)
	require.NoError(t, err)
	return &user.User{
		UserID:    42,
		Username:  "drsmith",
		Email:     "drsmith@clinic.example",
		Password:  hashed,
		FirstName: "Jordan",
		LastName:  "Smith",
		Role:      user.RoleClinician,
		IsActive:  true,
	}
}

// TestService_Login tests the Login method
func TestService_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		svc, mockUsers, mockSessions, codec := newTestService(t)
		u := testUser(t, "SecureP@ss123")

		mockUsers.On("FindByUsername", "drsmith").Return(u, nil)
		mockSessions.On("Create",
			mock.AnythingOfType("string"), uint(42),
			mock.AnythingOfType("string"), "192.168.1.1", "Mozilla/5.0",
			codec.RefreshTTL()).
			Return(&session.Session{SessionID: "sid"}, nil)

		result, err := svc.Login("drsmith", "SecureP@ss123", "192.168.1.1", "Mozilla/5.0")

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEmpty(t, result.SessionID)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, codec.AccessTTL().Milliseconds(), result.AccessTokenExpiresIn)
		assert.Equal(t, codec.RefreshTTL().Milliseconds(), result.RefreshTokenExpiresIn)
		assert.Equal(t, "drsmith", result.User.Username)

		accessClaims, err := codec.Verify(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeAccess, accessClaims.TokenType())
		assert.Equal(t, "drsmith", accessClaims.Subject())

		refreshClaims, err := codec.Verify(result.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType())
		assert.Equal(t, result.SessionID, refreshClaims.SessionID())

		mockUsers.AssertExpectations(t)
		mockSessions.AssertExpectations(t)
	})

	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		svc, mockUsers, _, _ := newTestService(t)
		u := testUser(t, "SecureP@ss123")

		mockUsers.On("FindByUsername", "nobody").Return(nil, errors.New("record not found"))
		mockUsers.On("FindByUsername", "drsmith").Return(u, nil)

		_, errUnknown := svc.Login("nobody", "whatever", "", "")
		_, errWrongPass := svc.Login("drsmith", "wrongpassword", "", "")

		assert.Equal(t, ErrInvalidCredentials, errUnknown)
		assert.Equal(t, ErrInvalidCredentials, errWrongPass)
		assert.Equal(t, errUnknown, errWrongPass)
	})

	t.Run("login fails when session persistence fails", func(t *testing.T) {
		svc, mockUsers, mockSessions, _ := newTestService(t)
		u := testUser(t, "SecureP@ss123")

		mockUsers.On("FindByUsername", "drsmith").Return(u, nil)
		mockSessions.On("Create",
			mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("database error"))

		result, err := svc.Login("drsmith", "SecureP@ss123", "", "")

		assert.Nil(t, result)
		assert.Equal(t, ErrInternal, err)
		mockSessions.AssertExpectations(t)
	})
}

// TestService_Refresh tests the Refresh method
func TestService_Refresh(t *testing.T) {
	t.Run("successful refresh", func(t *testing.T) {
		svc, mockUsers, mockSessions, codec := newTestService(t)
		u := testUser(t, "SecureP@ss123")

		refreshToken, err := codec.MintRefreshToken(u.Username, u.UserID, "sid-1")
		require.NoError(t, err)

		sess := &session.Session{
			SessionID:    "sid-1",
			UserID:       u.UserID,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().UTC().Add(time.Hour),
			IsActive:     true,
		}

		mockSessions.On("FindActiveByRefreshToken", refreshToken).Return(sess, nil)
		mockUsers.On("FindByID", u.UserID).Return(u, nil)
		mockSessions.On("Touch", "sid-1").Return(nil)

		result, err := svc.Refresh(refreshToken)

		require.NoError(t, err)
		assert.Equal(t, "sid-1", result.SessionID)
		assert.Equal(t, codec.AccessTTL().Milliseconds(), result.AccessTokenExpiresIn)

		claims, err := codec.Verify(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeAccess, claims.TokenType())
		assert.Equal(t, u.Username, claims.Subject())

		mockUsers.AssertExpectations(t)
		mockSessions.AssertExpectations(t)
	})

	t.Run("refresh token is not rotated", func(t *testing.T) {
		svc, mockUsers, mockSessions, codec := newTestService(t)
		u := testUser(t, "SecureP@ss123")

		refreshToken, err := codec.MintRefreshToken(u.Username, u.UserID, "sid-1")
		require.NoError(t, err)

		sess := &session.Session{
			SessionID:    "sid-1",
			UserID:       u.UserID,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().UTC().Add(time.Hour),
			IsActive:     true,
		}

		mockSessions.On("FindActiveByRefreshToken", refreshToken).Return(sess, nil)
		mockUsers.On("FindByID", u.UserID).Return(u, nil)
		mockSessions.On("Touch", "sid-1").Return(nil)

		first, err := svc.Refresh(refreshToken)
		require.NoError(t, err)
		second, err := svc.Refresh(refreshToken)
		require.NoError(t, err)

		assert.Equal(t, first.SessionID, second.SessionID)
	})

	t.Run("blank token is invalid", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.Refresh("")
		assert.Equal(t, ErrInvalidToken, err)

		_, err = svc.Refresh("   ")
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("access token presented as refresh is invalid", func(t *testing.T) {
		svc, _, _, codec := newTestService(t)

		accessToken, err := codec.MintAccessToken("drsmith", user.RoleClinician, 42)
		require.NoError(t, err)

		_, err = svc.Refresh(accessToken)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("no active session behind the token", func(t *testing.T) {
		svc, _, mockSessions, codec := newTestService(t)

		refreshToken, err := codec.MintRefreshToken("drsmith", 42, "sid-1")
		require.NoError(t, err)

		mockSessions.On("FindActiveByRefreshToken", refreshToken).Return(nil, session.ErrNotFound)

		_, err = svc.Refresh(refreshToken)
		assert.Equal(t, ErrSessionNotFound, err)
	})

	t.Run("expired session is revoked and rejected", func(t *testing.T) {
		svc, _, mockSessions, codec := newTestService(t)

		refreshToken, err := codec.MintRefreshToken("drsmith", 42, "sid-1")
		require.NoError(t, err)

		sess := &session.Session{
			SessionID:    "sid-1",
			UserID:       42,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().UTC().Add(-time.Minute),
			IsActive:     true,
		}

		mockSessions.On("FindActiveByRefreshToken", refreshToken).Return(sess, nil)
		mockSessions.On("Revoke", "sid-1").Return(nil)

		_, err = svc.Refresh(refreshToken)

		assert.Equal(t, ErrSessionExpired, err)
		mockSessions.AssertCalled(t, "Revoke", "sid-1")
	})
}

// TestService_Logout tests the Logout method
func TestService_Logout(t *testing.T) {
	t.Run("revokes the session behind the token", func(t *testing.T) {
		svc, _, mockSessions, codec := newTestService(t)

		refreshToken, err := codec.MintRefreshToken("drsmith", 42, "sid-1")
		require.NoError(t, err)

		sess := &session.Session{SessionID: "sid-1", RefreshToken: refreshToken, IsActive: true}

		mockSessions.On("FindActiveByRefreshToken", refreshToken).Return(sess, nil)
		mockSessions.On("Revoke", "sid-1").Return(nil)

		require.NoError(t, svc.Logout(refreshToken))
		mockSessions.AssertExpectations(t)
	})

	t.Run("blank token logs out successfully", func(t *testing.T) {
		svc, _, mockSessions, _ := newTestService(t)

		require.NoError(t, svc.Logout(""))
		mockSessions.AssertNotCalled(t, "Revoke", mock.Anything)
	})

	t.Run("unknown token logs out successfully", func(t *testing.T) {
		svc, _, mockSessions, _ := newTestService(t)

		mockSessions.On("FindActiveByRefreshToken", "unknown-token").Return(nil, session.ErrNotFound)

		require.NoError(t, svc.Logout("unknown-token"))
	})
}

// TestService_LogoutAll tests the LogoutAll method
func TestService_LogoutAll(t *testing.T) {
	t.Run("revokes all sessions", func(t *testing.T) {
		svc, _, mockSessions, _ := newTestService(t)

		mockSessions.On("RevokeAll", uint(42)).Return(nil)

		require.NoError(t, svc.LogoutAll(42))
		mockSessions.AssertExpectations(t)
	})

	t.Run("surfaces internal failure", func(t *testing.T) {
		svc, _, mockSessions, _ := newTestService(t)

		mockSessions.On("RevokeAll", uint(42)).Return(errors.New("database error"))

		assert.Equal(t, ErrInternal, svc.LogoutAll(42))
	})
}

// TestService_CurrentUser tests access token resolution
func TestService_CurrentUser(t *testing.T) {
	t.Run("resolves the token owner", func(t *testing.T) {
		svc, mockUsers, _, codec := newTestService(t)
		u := testUser(t, "SecureP@ss123")

		accessToken, err := codec.MintAccessToken(u.Username, u.Role, u.UserID)
		require.NoError(t, err)

		mockUsers.On("FindByUsername", u.Username).Return(u, nil)

		profile, err := svc.CurrentUser(accessToken)

		require.NoError(t, err)
		assert.Equal(t, u.Username, profile.Username)
		assert.Equal(t, u.Role, profile.Role)
	})

	t.Run("rejects a refresh token", func(t *testing.T) {
		svc, _, _, codec := newTestService(t)

		refreshToken, err := codec.MintRefreshToken("drsmith", 42, "sid")
		require.NoError(t, err)

		_, err = svc.CurrentUser(refreshToken)
		assert.Equal(t, ErrUnauthenticated, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expiredCodec, err := NewTokenCodec(testSecret, -time.Minute, time.Hour)
		require.NoError(t, err)

		mockUsers := new(MockUserRepository)
		svc := NewService(mockUsers, new(MockSessionService), expiredCodec)

		accessToken, err := expiredCodec.MintAccessToken("drsmith", user.RoleClinician, 42)
		require.NoError(t, err)

		_, err = svc.CurrentUser(accessToken)
		assert.Equal(t, ErrUnauthenticated, err)
		mockUsers.AssertNotCalled(t, "FindByUsername", mock.Anything)
	})

	t.Run("rejects a blank token", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.CurrentUser("")
		assert.Equal(t, ErrUnauthenticated, err)
	})
}

// TestService_ValidateAccessToken tests the lightweight validity check
func TestService_ValidateAccessToken(t *testing.T) {
	svc, _, _, codec := newTestService(t)

	accessToken, err := codec.MintAccessToken("drsmith", user.RoleClinician, 42)
	require.NoError(t, err)
	refreshToken, err := codec.MintRefreshToken("drsmith", 42, "sid")
	require.NoError(t, err)

	assert.True(t, svc.ValidateAccessToken(accessToken))
	assert.False(t, svc.ValidateAccessToken(refreshToken), "wrong token type")
	assert.False(t, svc.ValidateAccessToken(""), "blank token")
	assert.False(t, svc.ValidateAccessToken("garbage"), "malformed token")
}

// TestService_CleanupSessions tests expired session cleanup
func TestService_CleanupSessions(t *testing.T) {
	t.Run("reports deleted count", func(t *testing.T) {
		svc, _, mockSessions, _ := newTestService(t)

		mockSessions.On("CleanupExpired", mock.AnythingOfType("time.Time")).Return(int64(3), nil)

		count, err := svc.CleanupSessions()

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("surfaces internal failure", func(t *testing.T) {
		svc, _, mockSessions, _ := newTestService(t)

		mockSessions.On("CleanupExpired", mock.AnythingOfType("time.Time")).Return(int64(0), errors.New("database error"))

		_, err := svc.CleanupSessions()
		assert.Equal(t, ErrInternal, err)
	})
}
