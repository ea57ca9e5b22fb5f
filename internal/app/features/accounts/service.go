// Package accounts implements account lifecycle operations: registration,
// login, profile and password management, invitations, and password
// resets.
package accounts

import (
	"context"
	"time"

	"github.com/dalemusser/taskflow/internal/app/store/users"
	"github.com/dalemusser/taskflow/internal/app/system/apperr"
	"github.com/dalemusser/taskflow/internal/app/system/auth"
	"github.com/dalemusser/taskflow/internal/app/system/authz"
	"github.com/dalemusser/taskflow/internal/app/system/inputval"
	"github.com/dalemusser/taskflow/internal/app/system/normalize"
	"github.com/dalemusser/taskflow/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultResetTTL is how long a password reset token stays valid.
const DefaultResetTTL = time.Hour

type Service struct {
	users    *userstore.Store
	tokens   *auth.TokenManager
	log      *zap.Logger
	resetTTL time.Duration
}

func New(users *userstore.Store, tokens *auth.TokenManager, logger *zap.Logger, resetTTL time.Duration) *Service {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}
	return &Service{users: users, tokens: tokens, log: logger, resetTTL: resetTTL}
}

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string `validate:"required,min=1,max=120"`
}

// Register creates a MEMBER account and returns the user with a signed
// session token. Duplicate emails are a Conflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	// Validate what will be stored, not the raw input: a whitespace-only
	// name trims to empty.
	in.Name = normalize.Name(in.Name)
	if err := inputval.Validate(in); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.Internal("could not process password")
	}

	created, err := s.users.Create(ctx, models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         models.RoleMember,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			return nil, "", apperr.Conflict("an account with this email already exists")
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID.Hex(), string(created.Role))
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", zap.String("user_id", created.ID.Hex()))
	return &created, token, nil
}

// Login verifies credentials and returns the user with a signed session
// token. Unknown emails and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", apperr.Unauthorized("invalid email or password")
		}
		return nil, "", err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Issue(u.ID.Hex(), string(u.Role))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

type UpdateProfileInput struct {
	Name  *string `validate:"omitempty,min=1,max=120"`
	Email *string `validate:"omitempty,email"`
}

// UpdateProfile applies a partial update to the current user's profile.
func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	_, _, uid, ok := authz.UserCtx(ctx)
	if !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	if in.Name != nil {
		// omitempty skips empty strings, so a blank name needs an
		// explicit rejection after trimming.
		trimmed := normalize.Name(*in.Name)
		if trimmed == "" {
			return nil, apperr.Invalid("name cannot be blank")
		}
		in.Name = &trimmed
	}
	if err := inputval.Validate(in); err != nil {
		return nil, err
	}

	u, err := s.users.UpdateProfile(ctx, uid, userstore.ProfileUpdate{Name: in.Name, Email: in.Email})
	if err != nil {
		switch err {
		case userstore.ErrDuplicateEmail:
			return nil, apperr.Conflict("an account with this email already exists")
		case mongo.ErrNoDocuments:
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

type ChangePasswordInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=8"`
}

// ChangePassword replaces the current user's password after verifying
// the existing one.
func (s *Service) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	_, _, uid, ok := authz.UserCtx(ctx)
	if !ok {
		return apperr.Unauthorized("authentication required")
	}
	if err := inputval.Validate(in); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, in.CurrentPassword) {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return apperr.Internal("could not process password")
	}
	return s.users.UpdatePassword(ctx, uid, hash)
}

type InviteUserInput struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=1,max=120"`
	Role  string `validate:"required,oneof=ADMIN LEAD MEMBER"`
}

// InviteUser creates an account on behalf of an admin. The new user
// gets an unguessable placeholder password and an active reset token so
// they can set their own. Admin only.
func (s *Service) InviteUser(ctx context.Context, in InviteUserInput) (*models.User, error) {
	if _, _, _, ok := authz.UserCtx(ctx); !ok {
		return nil, apperr.Unauthorized("authentication required")
	}
	if !authz.IsAdmin(ctx) {
		return nil, apperr.Forbidden("only admins can invite users")
	}
	in.Name = normalize.Name(in.Name)
	in.Role = normalize.Role(in.Role)
	if err := inputval.Validate(in); err != nil {
		return nil, err
	}

	parsedRole, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, apperr.Internal("could not process password")
	}

	created, err := s.users.Create(ctx, models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         parsedRole,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			return nil, apperr.Conflict("an account with this email already exists")
		}
		return nil, err
	}

	token := uuid.NewString()
	if err := s.users.SetResetToken(ctx, created.ID, token, time.Now().Add(s.resetTTL)); err != nil {
		return nil, err
	}

	// Token delivery is out of band; surface it in the logs for dev.
	s.log.Info("user invited",
		zap.String("user_id", created.ID.Hex()),
		zap.String("email", created.Email),
		zap.String("reset_token", token))
	return &created, nil
}

// ResetPassword starts a password reset for the given email. The result
// is true regardless of whether the account exists, so the endpoint
// does not reveal which emails are registered.
func (s *Service) ResetPassword(ctx context.Context, email string) (bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return true, nil
		}
		return false, err
	}

	token := uuid.NewString()
	if err := s.users.SetResetToken(ctx, u.ID, token, time.Now().Add(s.resetTTL)); err != nil {
		return false, err
	}

	s.log.Info("password reset requested",
		zap.String("user_id", u.ID.Hex()),
		zap.String("reset_token", token))
	return true, nil
}

type ConfirmPasswordResetInput struct {
	Token       string `validate:"required"`
	NewPassword string `validate:"required,min=8"`
}

// ConfirmPasswordReset redeems a reset token. Tokens are single use and
// expire after the configured TTL.
func (s *Service) ConfirmPasswordReset(ctx context.Context, in ConfirmPasswordResetInput) error {
	if err := inputval.Validate(in); err != nil {
		return err
	}

	u, err := s.users.GetByResetToken(ctx, in.Token)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.Unauthorized("invalid or expired reset token")
		}
		return err
	}
	if u.ResetTokenExpiry == nil || time.Now().After(*u.ResetTokenExpiry) {
		return apperr.Unauthorized("invalid or expired reset token")
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return apperr.Internal("could not process password")
	}
	if err := s.users.ConsumeResetToken(ctx, u.ID, in.Token, hash); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.Unauthorized("invalid or expired reset token")
		}
		return err
	}

	s.log.Info("password reset completed", zap.String("user_id", u.ID.Hex()))
	return nil
}

// SessionUserID returns the authenticated user's ObjectID, or an
// Unauthorized error.
func SessionUserID(ctx context.Context) (primitive.ObjectID, error) {
	_, _, uid, ok := authz.UserCtx(ctx)
	if !ok {
		return primitive.NilObjectID, apperr.Unauthorized("authentication required")
	}
	return uid, nil
}
