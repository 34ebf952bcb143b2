package user_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/examhub/internal/auth"
	"github.com/saulo-duarte/examhub/internal/testutil"
	"github.com/saulo-duarte/examhub/internal/user"
)

type stubProvider struct {
	profile *user.Profile
}

func (p *stubProvider) Exchange(ctx context.Context, code string) (*user.Profile, error) {
	return p.profile, nil
}

func newService(t *testing.T, profile *user.Profile) user.UserService {
	t.Helper()
	os.Setenv("JWT_SECRET", "user-service-test-secret")
	t.Cleanup(func() { os.Unsetenv("JWT_SECRET") })
	auth.Init()

	db := testutil.NewDB(t, &user.User{})
	return user.NewService(user.NewRepository(db), &stubProvider{profile: profile})
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a user and issues tokens", func(t *testing.T) {
		svc := newService(t, &user.Profile{Subject: "g-1", Email: "Ada@Example.com", Name: "Ada", EmailVerified: true})

		session, err := svc.GoogleLogin(ctx, "code")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", session.User.Email)
		assert.Equal(t, user.RoleUser, session.User.Role)

		claims, err := auth.ValidateJWT(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID.String(), claims.UserID)
		assert.Equal(t, "USER", claims.Role)

		_, err = auth.ValidateRefreshJWT(session.RefreshToken)
		require.NoError(t, err)

		again, err := svc.GoogleLogin(ctx, "code")
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, again.User.ID)

		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("admin emails are promoted", func(t *testing.T) {
		os.Setenv("ADMIN_EMAILS", "root@example.com")
		t.Cleanup(func() { os.Unsetenv("ADMIN_EMAILS") })

		svc := newService(t, &user.Profile{Subject: "g-2", Email: "root@example.com", Name: "Root", EmailVerified: true})
		session, err := svc.GoogleLogin(ctx, "code")
		require.NoError(t, err)
		assert.True(t, session.User.IsAdmin())
	})

	t.Run("unverified email", func(t *testing.T) {
		svc := newService(t, &user.Profile{Subject: "g-3", Email: "x@example.com"})
		_, err := svc.GoogleLogin(ctx, "code")
		assert.ErrorIs(t, err, user.ErrEmailNotVerified)
	})

	t.Run("missing code", func(t *testing.T) {
		svc := newService(t, nil)
		_, err := svc.GoogleLogin(ctx, " ")
		assert.ErrorIs(t, err, user.ErrInvalidCode)
	})
}

func TestRefreshAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &user.Profile{Subject: "g-4", Email: "lin@example.com", Name: "Lin", EmailVerified: true})

	session, err := svc.GoogleLogin(ctx, "code")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, refreshed.User.ID)

	_, err = svc.Refresh(ctx, session.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)

	ok, err := svc.Exists(ctx, session.User.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = svc.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
