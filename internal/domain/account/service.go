package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acuchart/acuchart/internal/platform/auth"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrPendingApproval   = errors.New("account is awaiting administrator approval")
)

type RegisterInput struct {
	Username         string `json:"username"`
	Password         string `json:"password"`
	ClinicName       string `json:"clinic_name"`
	PractitionerName string `json:"practitioner_name"`
	LicenseNo        string `json:"license_no"`
}

type Service struct {
	repo        AccountRepository
	tokens      *auth.TokenIssuer
	autoApprove bool
}

func NewService(repo AccountRepository, tokens *auth.TokenIssuer, autoApprove bool) *Service {
	return &Service{repo: repo, tokens: tokens, autoApprove: autoApprove}
}

// Register creates a practitioner account. In auto-approval mode the
// account is usable immediately; in manual mode it stays pending until an
// administrator approves it, and the returned token is only useful after
// that.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &Account{
		Username:         username,
		PasswordHash:     string(hash),
		ClinicName:       strings.TrimSpace(in.ClinicName),
		PractitionerName: strings.TrimSpace(in.PractitionerName),
		LicenseNo:        strings.TrimSpace(in.LicenseNo),
		IsApproved:       s.autoApprove,
	}
	if s.autoApprove {
		now := time.Now()
		a.ApprovedAt = &now
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(a.ID, a.Username, a.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Account: a, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	a, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	if !a.IsApproved {
		return nil, ErrPendingApproval
	}

	token, err := s.tokens.Issue(a.ID, a.Username, a.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Account: a, Token: token}, nil
}

// VerifySession validates a token and loads the account it references.
func (s *Service) VerifySession(ctx context.Context, token string) (*Account, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, claims.AccountID())
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

// -- Administrative operations --

func (s *Service) ListAll(ctx context.Context) ([]*Account, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListPending(ctx context.Context) ([]*Account, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) Approve(ctx context.Context, id, approvedBy uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	a.IsApproved = true
	a.ApprovedAt = &now
	a.ApprovedBy = &approvedBy
	return s.repo.Update(ctx, a)
}

// Reject removes a pending account. Rejecting an approved account is the
// same as deleting it.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// CreateAdmin seeds an administrator account. Used by the create-admin
// CLI command, not exposed over HTTP.
func (s *Service) CreateAdmin(ctx context.Context, username, password string) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	a := &Account{
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsApproved:   true,
		ApprovedAt:   &now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
