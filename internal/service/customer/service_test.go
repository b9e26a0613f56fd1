package customer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jewelcart/internal/domain"
	tokenrepo "jewelcart/internal/repository/token"
)

type stubCustomerRepo struct {
	byEmail map[string]*domain.Customer
	nextID  int64
	created []domain.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byEmail: make(map[string]*domain.Customer), nextID: 1}
}

func (s *stubCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if _, ok := s.byEmail[c.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	c.ID = s.nextID
	s.nextID++
	s.byEmail[c.Email] = &c
	s.created = append(s.created, c)
	return &c, nil
}

func (s *stubCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	if c, ok := s.byEmail[email]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	for _, c := range s.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (s *stubTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := s.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *stubTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	if t, ok := s.tokens[token]; ok {
		return &t, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubTokenRepo) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func TestSignupNormalizesEmailAndHashesPassword(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := New(repo, newStubTokenRepo())

	created, token, err := svc.Signup(context.Background(), SignupInput{
		Email:     "  User@Example.COM ",
		Password:  "longenough",
		FirstName: " Ada ",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if created.Email != "user@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", created.Email)
	}
	if created.FirstName != "Ada" {
		t.Fatalf("first name = %q, want trimmed", created.FirstName)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	stored := repo.created[0]
	if stored.PasswordHash == "longenough" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc := New(newStubCustomerRepo(), newStubTokenRepo())

	_, _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.c", Password: "short"})
	if err == nil || !strings.Contains(err.Error(), "at least 8") {
		t.Fatalf("Signup() error = %v, want password length error", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := New(repo, newStubTokenRepo())
	ctx := context.Background()

	in := SignupInput{Email: "a@b.c", Password: "longenough"}
	if _, _, err := svc.Signup(ctx, in); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}
	if _, _, err := svc.Signup(ctx, in); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("second Signup() error = %v, want already-registered error", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := New(repo, newStubTokenRepo())
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, SignupInput{Email: "a@b.c", Password: "longenough"}); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	if _, _, err := svc.Login(ctx, "a@b.c", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "missing@b.c", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := New(repo, newStubTokenRepo())
	ctx := context.Background()

	created, token, err := svc.Signup(ctx, SignupInput{Email: "a@b.c", Password: "longenough"})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	got, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("customer id = %d, want %d", got.ID, created.ID)
	}

	if _, err := svc.Authenticate(ctx, "no-such-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Authenticate() bogus token error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthenticateExpiredTokenIsDeleted(t *testing.T) {
	repo := newStubCustomerRepo()
	tokens := newStubTokenRepo()
	svc := New(repo, tokens)
	ctx := context.Background()

	created, _, err := svc.Signup(ctx, SignupInput{Email: "a@b.c", Password: "longenough"})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	tokens.tokens["stale"] = tokenrepo.Token{
		Token:      "stale",
		CustomerID: created.ID,
		Kind:       "access",
		ExpiresAt:  time.Now().Add(-time.Minute),
	}

	if _, err := svc.Authenticate(ctx, "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Authenticate() expired token error = %v, want ErrInvalidToken", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Fatal("expired token not deleted")
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := newStubCustomerRepo()
	tokens := newStubTokenRepo()
	svc := New(repo, tokens)
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, SignupInput{Email: "a@b.c", Password: "longenough"})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Authenticate() after logout error = %v, want ErrInvalidToken", err)
	}
}
