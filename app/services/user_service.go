package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/app/repositories"
	"github.com/Kantor012/Product-Catalog/config"
	"github.com/Kantor012/Product-Catalog/pkg/auth"
	"github.com/Kantor012/Product-Catalog/pkg/logger"
	"github.com/Kantor012/Product-Catalog/pkg/mail"
	"github.com/Kantor012/Product-Catalog/pkg/metrics"
	"github.com/Kantor012/Product-Catalog/pkg/workerpool"
)

// UserService implements registration, email verification, login, profile
// updates, and the admin user management rules.
type UserService struct {
	users UserStore
	pool  *workerpool.Pool
}

func NewUserService(users UserStore, pool *workerpool.Pool) *UserService {
	return &UserService{users: users, pool: pool}
}

// AuthUser is the login/profile response: public identity plus a fresh JWT.
type AuthUser struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	IsAdmin bool               `json:"isAdmin"`
	Token   string             `json:"token"`
}

// Register creates an unverified account and dispatches the verification
// email off the request path through the worker pool.
func (s *UserService) Register(ctx context.Context, name, email, password string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("users: hash password: %w", err)
	}

	u := models.User{
		Name:              name,
		Email:             email,
		Password:          hashed,
		IsAdmin:           false,
		IsVerified:        false,
		VerificationToken: auth.NewVerificationToken(),
	}
	if err := s.users.Insert(ctx, &u); err != nil {
		return err
	}

	s.sendVerificationEmail(u.Email, u.VerificationToken)
	return nil
}

func (s *UserService) sendVerificationEmail(email, token string) {
	link := config.BaseURL() + "/api/users/verify/" + token

	err := s.pool.Submit(func() {
		err := mail.To(email).
			Subject("Verify your email").
			Body(fmt.Sprintf(
				`<p>Welcome! Please confirm your email address by clicking the link below.</p>
<p><a href=%q>Verify email</a></p>`, link)).
			Send()
		if err != nil {
			metrics.MailSent.WithLabelValues("failed").Inc()
			logger.Error("mail: verification send failed", "email", email, "error", err)
			return
		}
		metrics.MailSent.WithLabelValues("success").Inc()
	})
	if err != nil {
		metrics.MailSent.WithLabelValues("failed").Inc()
		logger.Warn("mail: verification send not queued", "email", email, "error", err)
	}
}

// Verify flips the account to verified and discards the token.
func (s *UserService) Verify(ctx context.Context, token string) error {
	u, err := s.users.FindByVerificationToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	return s.users.MarkVerified(ctx, u.ID)
}

// Login checks credentials and issues a JWT. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (AuthUser, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return AuthUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthUser{}, err
	}

	if !auth.CheckPassword(u.Password, password) {
		return AuthUser{}, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return AuthUser{}, ErrNotVerified
	}

	return s.authUser(u)
}

// ProfileInput carries the optional self-service profile changes.
type ProfileInput struct {
	Name     string `json:"name" validate:"nullable,min=2"`
	Email    string `json:"email" validate:"nullable,email"`
	Password string `json:"password" validate:"nullable,min=6"`
}

// UpdateProfile applies partial changes to the caller's own account and
// returns the fresh profile with a re-issued token.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in ProfileInput) (AuthUser, error) {
	u, err := s.users.FindFullByID(ctx, userID)
	if err != nil {
		return AuthUser{}, err
	}

	fields := bson.M{
		"name":  u.Name,
		"email": u.Email,
	}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.Password != "" {
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return AuthUser{}, fmt.Errorf("users: hash password: %w", err)
		}
		fields["password"] = hashed
	}

	if err := s.users.Update(ctx, userID, fields); err != nil {
		return AuthUser{}, err
	}

	fresh, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return AuthUser{}, err
	}
	return s.authUser(fresh)
}

// All returns every user, credentials stripped.
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrInvalidID
	}
	return s.users.FindByID(ctx, oid)
}

// CreateByAdmin creates a pre-verified account, optionally with the admin
// flag set.
func (s *UserService) CreateByAdmin(ctx context.Context, name, email, password string, isAdmin bool) (models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrDuplicateAdminEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("users: hash password: %w", err)
	}

	u := models.User{
		Name:       name,
		Email:      email,
		Password:   hashed,
		IsAdmin:    isAdmin,
		IsVerified: true,
	}
	if err := s.users.Insert(ctx, &u); err != nil {
		return models.User{}, err
	}
	return s.users.FindByID(ctx, u.ID)
}

// UpdateByAdmin changes a user's name, email, and admin flag. Demoting the
// last administrator is refused so the system always keeps one.
func (s *UserService) UpdateByAdmin(ctx context.Context, id string, name, email string, isAdmin bool) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrInvalidID
	}

	if !isAdmin {
		target, err := s.users.FindByID(ctx, oid)
		if err != nil {
			return models.User{}, err
		}
		if target.IsAdmin {
			admins, err := s.users.CountAdmins(ctx)
			if err != nil {
				return models.User{}, err
			}
			if admins <= 1 {
				return models.User{}, ErrLastAdminDemote
			}
		}
	}

	fields := bson.M{"name": name, "email": email, "isAdmin": isAdmin}
	if err := s.users.Update(ctx, oid, fields); err != nil {
		return models.User{}, err
	}
	return s.users.FindByID(ctx, oid)
}

// Delete removes a user. An administrator is deletable only while another
// administrator remains.
func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	target, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if target.IsAdmin {
		admins, err := s.users.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdminDelete
		}
	}

	return s.users.Delete(ctx, oid)
}

func (s *UserService) authUser(u models.User) (AuthUser, error) {
	token, err := auth.GenerateToken(u.ID.Hex(), u.IsAdmin)
	if err != nil {
		return AuthUser{}, fmt.Errorf("users: sign token: %w", err)
	}
	return AuthUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		Token:   token,
	}, nil
}
