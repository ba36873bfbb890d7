package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shophub/storefront/internal/docstore/memory"
	"github.com/shophub/storefront/internal/identity/domain"
)

func newTestService() *Service {
	return NewService(memory.New(), "test-secret", time.Hour)
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Jo@Example.com", "hunter22", "Jo")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if user.Email != "jo@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %q", user.Role)
	}
	if svc.CurrentUserID() != user.UID {
		t.Fatalf("signup did not sign the session in: %q", svc.CurrentUserID())
	}

	svc.SignOut(ctx)

	again, err := svc.SignIn(ctx, "jo@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if again.UID != user.UID {
		t.Fatalf("signed in as a different user: %q != %q", again.UID, user.UID)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "jo@example.com", "hunter22", "Jo"); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	svc.SignOut(ctx)

	if _, err := svc.SignIn(ctx, "jo@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if svc.CurrentUserID() != domain.GuestID {
		t.Fatal("failed sign-in changed the session")
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.SignIn(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUpEmailTaken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "jo@example.com", "hunter22", "Jo"); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	_, err := svc.SignUp(ctx, "JO@example.com", "other", "Jo Again")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "", "pw", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty email, got %v", err)
	}
	if _, err := svc.SignUp(ctx, "a@b.c", "", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestSignInWithProviderCreatesOnce(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.SignInWithProvider(ctx, "google", "jo@example.com", "Jo")
	if err != nil {
		t.Fatalf("SignInWithProvider failed: %v", err)
	}

	second, err := svc.SignInWithProvider(ctx, "google", "jo@example.com", "Jo")
	if err != nil {
		t.Fatalf("second SignInWithProvider failed: %v", err)
	}
	if second.UID != first.UID {
		t.Fatalf("provider sign-in duplicated the account: %q != %q", second.UID, first.UID)
	}
}

func TestCurrentUserIDDefaultsToGuest(t *testing.T) {
	svc := newTestService()

	if got := svc.CurrentUserID(); got != domain.GuestID {
		t.Fatalf("expected guest sentinel, got %q", got)
	}
}

func TestOnChangeNotifiesAndUnsubscribes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var seen []*domain.User
	unsubscribe := svc.OnChange(func(u *domain.User) {
		seen = append(seen, u)
	})

	// Immediate invoke with the current (nil) identity.
	if len(seen) != 1 || seen[0] != nil {
		t.Fatalf("expected immediate nil callback, got %+v", seen)
	}

	user, err := svc.SignUp(ctx, "jo@example.com", "hunter22", "Jo")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if len(seen) != 2 || seen[1] == nil || seen[1].UID != user.UID {
		t.Fatalf("sign-up transition not delivered: %+v", seen)
	}

	svc.SignOut(ctx)
	if len(seen) != 3 || seen[2] != nil {
		t.Fatalf("sign-out transition not delivered: %+v", seen)
	}

	unsubscribe()
	if _, err := svc.SignUp(ctx, "other@example.com", "hunter22", "O"); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("callback fired after unsubscribe: %d calls", len(seen))
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	user := domain.User{UID: "u1", Email: "jo@example.com", DisplayName: "Jo", Role: domain.RoleAdmin}
	token, err := svc.Token(user)
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	parsed, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if parsed != user {
		t.Fatalf("token round trip lost data: %+v", parsed)
	}
}

func TestParseTokenRejectsForgery(t *testing.T) {
	svc := newTestService()

	user := domain.User{UID: "u1", Email: "jo@example.com"}
	token, err := svc.Token(user)
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	other := NewService(memory.New(), "different-secret", time.Hour)
	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken across secrets, got %v", err)
	}

	if _, err := svc.ParseToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewService(memory.New(), "test-secret", time.Hour)
	svc.now = func() time.Time { return time.Now().UTC().Add(-2 * time.Hour) }

	token, err := svc.Token(domain.User{UID: "u1"})
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().UTC() }
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
