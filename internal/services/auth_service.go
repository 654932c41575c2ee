package services

import (
	"fmt"
	"time"

	"taskhub/internal/database"
	"taskhub/internal/errs"
	"taskhub/internal/models"
	"taskhub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	msgBadCredentials  = "Incorrect username or password"
	msgInvalidToken    = "Could not validate credentials"
	msgExpiredToken    = "Token has expired"
	msgInactiveAccount = "Inactive user"
)

// Claims is the payload of an access token. Subject holds the username.
type Claims struct {
	UserID uint `json:"uid"`
	jwt.StandardClaims
}

// AuthService handles authentication and authorization.
type AuthService struct {
	users     repositories.UserRepository
	hasher    *Hasher
	jwtSecret []byte
	tokenTTL  time.Duration
	// dummyHash is compared against when the user does not exist, so a failed lookup
	// costs as much as a wrong password.
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, hasher *Hasher, jwtSecret string, tokenTTL time.Duration) (*AuthService, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		dummyHash: dummy,
	}, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong passwords
// produce the same error.
func (s *AuthService) Authenticate(sess *database.Session, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(sess.DB, username)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, errs.Auth(msgBadCredentials)
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, errs.Auth(msgBadCredentials)
	}
	return user, nil
}

// Login authenticates the user and returns a signed access token.
func (s *AuthService) Login(sess *database.Session, username, password string) (string, error) {
	user, err := s.Authenticate(sess, username, password)
	if err != nil {
		return "", err
	}
	return s.IssueToken(user)
}

// IssueToken returns an HS256 token for user that expires after the configured TTL.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.Username,
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate token")
	}
	return signed, nil
}

// Authorize verifies the token's signature and expiry without touching the store.
func (s *AuthService) Authorize(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 &&
			ve.Errors&(jwt.ValidationErrorMalformed|jwt.ValidationErrorUnverifiable|jwt.ValidationErrorSignatureInvalid) == 0 {
			return nil, errs.Auth(msgExpiredToken)
		}
		return nil, errs.Auth(msgInvalidToken)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errs.Auth(msgInvalidToken)
	}
	return claims, nil
}

// CurrentUser loads the account named by claims. A deleted account is an auth failure;
// a deactivated one is rejected as a bad request.
func (s *AuthService) CurrentUser(sess *database.Session, claims *Claims) (*models.User, error) {
	user, err := s.users.GetByUsername(sess.DB, claims.Subject)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil, errs.Auth(msgInvalidToken)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errs.BadRequest(msgInactiveAccount)
	}
	return user, nil
}
