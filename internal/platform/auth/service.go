package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/config"
	"equipment-backend/internal/platform/ids"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// ReferenceGuard reports whether other records still point at a user.
type ReferenceGuard interface {
	UserReferenced(ctx context.Context, id string) (bool, error)
}

// ===== Service本体 =====

type Service struct {
	store    UserStore
	tokens   *TokenManager
	refs     ReferenceGuard
	ids      ids.Generator
	clock    Clock
	log      logrus.FieldLogger
	hashCost int
}

func NewService(store UserStore, tokens *TokenManager, refs ReferenceGuard, gen ids.Generator, log logrus.FieldLogger) *Service {
	return &Service{
		store:    store,
		tokens:   tokens,
		refs:     refs,
		ids:      gen,
		clock:    realClock{},
		log:      log,
		hashCost: bcrypt.DefaultCost,
	}
}

var errBadCredentials = apierr.ErrInvalid("Invalid email or password.")

func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	u, err := s.store.GetByEmail(ctx, req.Email)
	if errors.Is(err, ErrUserNotFound) {
		return "", errBadCredentials
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", errBadCredentials
	}
	return s.tokens.Issue(toIdentity(u))
}

func (s *Service) Me(ctx context.Context, id string) (UserResponse, error) {
	return s.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toResponse(&users[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapStoreErr(err)
	}
	return toResponse(u), nil
}

// Create registers a user and returns it with a token for the new account.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, string, error) {
	hash, err := s.hash(req.Password)
	if err != nil {
		return UserResponse{}, "", err
	}
	u := &User{
		ID:           s.ids.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        *req.Phone,
		IsAdmin:      req.IsAdmin != nil && *req.IsAdmin,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return UserResponse{}, "", mapStoreErr(err)
	}
	token, err := s.tokens.Issue(toIdentity(u))
	if err != nil {
		return UserResponse{}, "", err
	}
	return toResponse(u), token, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	var hash string
	if req.Password != nil && *req.Password != "" {
		h, err := s.hash(*req.Password)
		if err != nil {
			return UserResponse{}, err
		}
		hash = h
	}
	u, err := s.store.Update(ctx, id, func(u *User) error {
		u.Name = req.Name
		u.Email = req.Email
		u.Phone = *req.Phone
		if req.IsAdmin != nil {
			u.IsAdmin = *req.IsAdmin
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		return nil
	})
	if err != nil {
		return UserResponse{}, mapStoreErr(err)
	}
	return toResponse(u), nil
}

// Delete removes a user nothing refers to anymore.
func (s *Service) Delete(ctx context.Context, id string) (UserResponse, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return UserResponse{}, mapStoreErr(err)
	}
	used, err := s.refs.UserReferenced(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if used {
		return UserResponse{}, apierr.ErrConflict("user is still referenced by projects or reports")
	}
	u, err := s.store.Delete(ctx, id)
	if err != nil {
		return UserResponse{}, mapStoreErr(err)
	}
	return toResponse(u), nil
}

// EnsureAdmin creates the configured admin account when no user exists yet.
func (s *Service) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if cfg.Email == "" {
		return nil
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}
	hash, err := s.hash(cfg.Password)
	if err != nil {
		return err
	}
	u := &User{
		ID:           s.ids.New(),
		Name:         name,
		Email:        cfg.Email,
		PasswordHash: hash,
		Phone:        cfg.Phone,
		IsAdmin:      true,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	s.log.WithField("email", u.Email).Info("bootstrap admin account created")
	return nil
}

// Exists reports whether a user with id is registered.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.store.GetByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Summaries loads the display projection of every known id. Unknown ids are
// absent from the map.
func (s *Service) Summaries(ctx context.Context, userIDs []string) (map[string]UserSummary, error) {
	users, err := s.store.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]UserSummary, len(users))
	for _, u := range users {
		out[u.ID] = UserSummary{ID: u.ID, Name: u.Name}
	}
	return out, nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return apierr.ErrNotFound("user with the given id was not found")
	case errors.Is(err, ErrEmailTaken):
		return apierr.ErrInvalid("user with given email already exists")
	default:
		return err
	}
}
