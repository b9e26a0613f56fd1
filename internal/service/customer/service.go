package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jewelcart/internal/domain"
	custrepo "jewelcart/internal/repository/customer"
	tokenrepo "jewelcart/internal/repository/token"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles customer signup/login flows and bearer-token validation.
type Service struct {
	repo        custrepo.Repository
	tokens      tokenrepo.Repository
	accessTTL   time.Duration
	passwordMin int
}

func New(repo custrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      tokens,
		accessTTL:   48 * time.Hour,
		passwordMin: 8,
	}
}

type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Signup registers a new customer and issues an access token.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Customer, string, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, "", errors.New("email required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, "", fmt.Errorf("password must be at least %d characters", s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	created, err := s.repo.Create(ctx, domain.Customer{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, "", errors.New("email already registered")
		}
		return nil, "", err
	}

	token, err := s.issueToken(ctx, created.ID)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Customer, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, c.ID)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

// Authenticate resolves a bearer token to its customer. Expired tokens are
// deleted on sight.
func (s *Service) Authenticate(ctx context.Context, tokenValue string) (*domain.Customer, error) {
	meta, err := s.tokens.Get(ctx, tokenValue)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if meta.Kind != "access" {
		return nil, ErrInvalidToken
	}
	if time.Now().After(meta.ExpiresAt) {
		_ = s.tokens.Delete(ctx, tokenValue)
		return nil, ErrInvalidToken
	}
	c, err := s.repo.GetByID(ctx, meta.CustomerID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// Logout revokes the token.
func (s *Service) Logout(ctx context.Context, tokenValue string) error {
	return s.tokens.Delete(ctx, tokenValue)
}

func (s *Service) issueToken(ctx context.Context, customerID int64) (string, error) {
	expiresAt := time.Now().Add(s.accessTTL)
	for i := 0; i < 5; i++ {
		token := uuid.NewString()
		err := s.tokens.Create(ctx, tokenrepo.Token{
			Token:      token,
			CustomerID: customerID,
			Kind:       "access",
			ExpiresAt:  expiresAt,
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}
