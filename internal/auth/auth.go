package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/Revanthsudeeep/waterconservation/internal/web"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	UserCtxKey web.ContextKey = "user_data"

	bcryptCost = 12
	issuer     = "waterconservation"
)

var (
	NotAuthenticatedUser = xerrors.Message("Not authenticated user")
	ErrInvalidToken      = xerrors.Message("invalid token")
)

type Auth struct {
	secret   []byte
	tokenTTL time.Duration
}

func New(secret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (user *User) SetPassword(plainTextPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcryptCost)
	if err != nil {
		return xerrors.New(err)
	}

	user.PlaintextPassword = plainTextPassword
	user.Password = hashedPassword
	return nil
}

func (user *User) IsPasswordMatch(plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(user.Password, []byte(plainTextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, xerrors.New(err)
	}

	return true, nil
}

func (auth *Auth) GenerateToken(user *User) (string, error) {
	now := time.Now()
	claim := UserClaim{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(auth.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	signedString, err := token.SignedString(auth.secret)
	if err != nil {
		return "", xerrors.New(err)
	}
	return signedString, nil
}

func (auth *Auth) Authenticate(tokenString string) (*UserClaim, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &UserClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.New("unexpected signing method")
		}
		return auth.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, xerrors.Newf("%w: %v", ErrInvalidToken, err)
	}

	claim, ok := parsedToken.Claims.(*UserClaim)
	if !ok || !parsedToken.Valid {
		return nil, xerrors.New(ErrInvalidToken)
	}
	if _, err := uuid.Parse(claim.UserID); err != nil {
		return nil, xerrors.Newf("%w: %v", ErrInvalidToken, err)
	}

	return claim, nil
}

func (auth *Auth) GetAuthenticatedUser(r *http.Request) (*User, error) {
	user, ok := web.GetValueFromContext[*User](r, UserCtxKey)
	if !ok {
		return nil, NotAuthenticatedUser
	}

	return user, nil
}

func (auth *Auth) SetAuthenticatedUser(r *http.Request, user *User) *http.Request {
	return web.AddValueToContext(r, UserCtxKey, user)
}

func (auth *Auth) IsUserAuthenticated(r *http.Request) bool {
	_, err := auth.GetAuthenticatedUser(r)
	return err == nil
}
