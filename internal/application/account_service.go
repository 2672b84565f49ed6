package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	repo "github.com/oksasatya/specimen-catalog/internal/domain/repository"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
	"github.com/oksasatya/specimen-catalog/pkg/mailer"
	mailtpl "github.com/oksasatya/specimen-catalog/pkg/mailer/templates"
)

// EmailPublisher queues email jobs for the worker.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AccountService handles login and gated signup.
type AccountService struct {
	Repo     repo.AccountRepository
	JWT      *helpers.JWTManager
	Mail     EmailPublisher // nil disables notifications
	Branding mailtpl.Branding
	Logger   *logrus.Logger

	StoreTimeout time.Duration
}

func NewAccountService(r repo.AccountRepository, jwt *helpers.JWTManager, mail EmailPublisher, branding mailtpl.Branding, logger *logrus.Logger, storeTimeout time.Duration) *AccountService {
	return &AccountService{
		Repo:         r,
		JWT:          jwt,
		Mail:         mail,
		Branding:     branding,
		Logger:       logger,
		StoreTimeout: storeTimeout,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *entity.Account `json:"account"`
}

func (s *AccountService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}

// Login verifies the credential and issues an access token. Unknown emails
// and wrong passwords fail the same way.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	a, err := s.Repo.GetByEmail(c, strings.TrimSpace(email))
	if errors.Is(err, repo.ErrNotFound) {
		helpers.SpendPasswordCompare(password)
		return nil, fmt.Errorf("login: %w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w: %v", ErrUpstream, err)
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return nil, fmt.Errorf("login: %w: invalid credentials", ErrUnauthorized)
	}

	token, exp, err := s.JWT.GenerateAccessToken(a.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("generate access token failed")
		}
		return nil, fmt.Errorf("login: %w: %v", ErrUpstream, err)
	}
	return &Session{Token: token, ExpiresAt: exp, Account: a}, nil
}

// Signup creates an account on behalf of the authenticated creatorID.
func (s *AccountService) Signup(ctx context.Context, creatorID, email, password, name string) (*entity.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("signup: %w: email and a password of at least 8 characters are required", ErrValidation)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w: %v", ErrValidation, err)
	}
	a := &entity.Account{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedBy:    creatorID,
	}

	c, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.Repo.Create(c, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("signup: %w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("signup: %w: %v", ErrUpstream, err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"account_id": a.ID, "created_by": creatorID}).Info("account created")
	}
	s.notifyProvisioned(ctx, a)
	return a, nil
}

// Me returns the account behind an authenticated request.
func (s *AccountService) Me(ctx context.Context, accountID string) (*entity.Account, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	a, err := s.Repo.GetByID(c, accountID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("me: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("me: %w: %v", ErrUpstream, err)
	}
	return a, nil
}

// notifyProvisioned queues the welcome email. Failures are logged only.
func (s *AccountService) notifyProvisioned(ctx context.Context, a *entity.Account) {
	if s.Mail == nil {
		return
	}
	opts := []mailtpl.Option{mailtpl.WithTime(a.CreatedAt)}
	if a.CreatedBy != "" {
		if creator, err := s.Repo.GetByID(ctx, a.CreatedBy); err == nil {
			opts = append(opts, mailtpl.WithCreatedBy(creator.Email))
		}
	}
	job := mailer.EmailJob{
		To:       a.Email,
		Template: mailtpl.AccountProvisioned,
		Data:     mailtpl.NewAccountProvisionedData(s.Branding, a.Name, a.Email, opts...),
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("queue account email failed")
	}
}

// Bootstrap makes sure the first privileged account exists. An existing
// account with that email is returned unchanged.
func (s *AccountService) Bootstrap(ctx context.Context, email, password, name string) (*entity.Account, bool, error) {
	if a, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email)); err == nil {
		return a, false, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, false, fmt.Errorf("bootstrap: %w: %v", ErrUpstream, err)
	}
	a, err := s.Signup(ctx, "", email, password, name)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}
