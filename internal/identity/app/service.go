package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shophub/storefront/internal/docstore"
	"github.com/shophub/storefront/internal/identity/domain"
)

const collection = "users"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service struct {
	store  docstore.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	current   *domain.User
	listeners map[int]func(*domain.User)
	nextID    int
}

func NewService(store docstore.Store, secret string, ttl time.Duration) *Service {
	return &Service{
		store:     store,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
		listeners: make(map[int]func(*domain.User)),
	}
}

// SignUp registers a new account, creates its profile document and signs
// the session in.
func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password required", ErrInvalidInput)
	}

	if _, err := s.findByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		UID:         uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		Role:        domain.RoleCustomer,
	}

	err = s.store.Upsert(ctx, collection, user.UID, docstore.Fields{
		"uid":          user.UID,
		"email":        user.Email,
		"displayName":  user.DisplayName,
		"role":         user.Role,
		"passwordHash": string(hash),
		"createdAt":    s.now().Format(time.RFC3339),
		"orderHistory": []any{},
	}, false)
	if err != nil {
		return domain.User{}, err
	}

	s.setCurrent(&user)
	return user, nil
}

// SignIn authenticates by email and password.
func (s *Service) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password required", ErrInvalidInput)
	}

	doc, err := s.findByEmail(ctx, email)
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	hash, _ := doc.Fields["passwordHash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	user := decodeUser(doc)
	s.setCurrent(&user)
	return user, nil
}

// SignInWithProvider handles federated sign-in: the provider has already
// vouched for the email, so the profile document is created if absent.
func (s *Service) SignInWithProvider(ctx context.Context, provider, email, displayName string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if provider == "" || email == "" {
		return domain.User{}, fmt.Errorf("%w: provider and email required", ErrInvalidInput)
	}

	doc, err := s.findByEmail(ctx, email)
	if err == nil {
		user := decodeUser(doc)
		s.setCurrent(&user)
		return user, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return domain.User{}, err
	}

	user := domain.User{
		UID:         uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		Role:        domain.RoleCustomer,
	}

	err = s.store.Upsert(ctx, collection, user.UID, docstore.Fields{
		"uid":          user.UID,
		"email":        user.Email,
		"displayName":  user.DisplayName,
		"role":         user.Role,
		"provider":     provider,
		"createdAt":    s.now().Format(time.RFC3339),
		"orderHistory": []any{},
	}, false)
	if err != nil {
		return domain.User{}, err
	}

	s.setCurrent(&user)
	return user, nil
}

func (s *Service) SignOut(ctx context.Context) {
	s.setCurrent(nil)
}

// OnChange registers a callback invoked with the current identity (nil for
// none) immediately and on every transition. The returned func unsubscribes.
func (s *Service) OnChange(fn func(*domain.User)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// CurrentUserID resolves the session's owner id: the signed-in uid, or the
// guest sentinel.
func (s *Service) CurrentUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.GuestID
	}
	return s.current.UID
}

// Token issues a signed session token for the user.
func (s *Service) Token(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.UID,
		"email": user.Email,
		"name":  user.DisplayName,
		"role":  user.Role,
		"exp":   s.now().Add(s.ttl).Unix(),
		"iat":   s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and reconstructs its user.
func (s *Service) ParseToken(tokenStr string) (domain.User, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.User{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.User{}, ErrInvalidToken
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return domain.User{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return domain.User{UID: uid, Email: email, DisplayName: name, Role: role}, nil
}

func (s *Service) setCurrent(user *domain.User) {
	s.mu.Lock()
	s.current = user
	listeners := make([]func(*domain.User), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(user)
	}
}

func (s *Service) findByEmail(ctx context.Context, email string) (docstore.Doc, error) {
	docs, err := s.store.Query(ctx, collection,
		map[string]any{"email": email}, docstore.OrderBy{})
	if err != nil {
		return docstore.Doc{}, err
	}
	if len(docs) == 0 {
		return docstore.Doc{}, docstore.ErrNotFound
	}
	return docs[0], nil
}

func decodeUser(doc docstore.Doc) domain.User {
	str := func(v any) string {
		s, _ := v.(string)
		return s
	}
	return domain.User{
		UID:         doc.ID,
		Email:       str(doc.Fields["email"]),
		DisplayName: str(doc.Fields["displayName"]),
		Role:        str(doc.Fields["role"]),
	}
}
