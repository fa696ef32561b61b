package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"goa.design/clue/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/hackside/backend/auth"
)

type UserSrvc struct {
	repo   UserRepo
	jwtKey []byte
}

func NewUserSrvc(repo UserRepo, jwtKey []byte) *UserSrvc {
	return &UserSrvc{
		repo:   repo,
		jwtKey: jwtKey,
	}
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

func (s *UserSrvc) Register(ctx context.Context, p RegisterParams) (*User, error) {
	if err := validateUsername(p.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(p.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(p.Password); err != nil {
		return nil, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	for _, existing := range all {
		// username must be unique
		if existing.Username == p.Username {
			return nil, newErrUsernameExists()
		}
		// email must be unique
		if existing.Email == p.Email {
			return nil, newErrEmailExists()
		}
	}

	bcryptPwd, err := bcrypt.GenerateFromPassword(
		[]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	row := &UserRow{
		Uuid:      uuid.New().String(),
		Username:  p.Username,
		Email:     p.Email,
		BcryptPwd: bcryptPwd,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, row); err != nil {
		log.Errorf(ctx, err, "error saving user")
		return nil, newErrInternalSE().SetDebug(err)
	}

	return rowToUser(row)
}

// Login verifies the credentials and returns a signed JWT.
func (s *UserSrvc) Login(ctx context.Context, username string, password string) (string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return "", newErrInternalSE().SetDebug(err)
	}

	for _, row := range all {
		if row.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(row.BcryptPwd, []byte(password)) != nil {
			continue
		}
		userUuid, err := uuid.Parse(row.Uuid)
		if err != nil {
			return "", newErrInternalSE().SetDebug(err)
		}
		token, err := auth.GenerateJWT(row.Username, row.Email, userUuid, s.jwtKey)
		if err != nil {
			return "", newErrInternalSE().SetDebug(err)
		}
		return token, nil
	}

	return "", newErrUsernameOrPasswordIncorrect()
}

func (s *UserSrvc) GetByUuid(ctx context.Context, userUuid uuid.UUID) (*User, error) {
	row, err := s.repo.Get(ctx, userUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	if row == nil {
		return nil, newErrUserNotFound()
	}
	return rowToUser(row)
}

func rowToUser(row *UserRow) (*User, error) {
	userUuid, err := uuid.Parse(row.Uuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return &User{
		UUID:      userUuid,
		Username:  row.Username,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}, nil
}

func validateUsername(username string) error {
	const minUsernameLength = 2
	const maxUsernameLength = 32
	if len(username) < minUsernameLength {
		return newErrUsernameTooShort(minUsernameLength)
	}
	if len(username) > maxUsernameLength {
		return newErrUsernameTooLong()
	}
	return nil
}

func validateEmail(email string) error {
	const maxEmailLength = 320
	if len(email) == 0 {
		return newErrEmailEmpty()
	}
	if len(email) > maxEmailLength {
		return newErrEmailTooLong()
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return newErrEmailInvalid()
	}
	return nil
}

func validatePassword(password string) error {
	const minPasswordLength = 8
	const maxPasswordLength = 1024
	if len(password) < minPasswordLength {
		return newErrPasswordTooShort(minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return newErrPasswordTooLong()
	}
	return nil
}
