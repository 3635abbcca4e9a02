package account

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/trendora/storefront/config"
)

// UserClaims binds a session token to a user id.
type UserClaims struct {
	UserID int64 `json:"uid,string"`
	jwt.RegisteredClaims
}

// AdminClaims carries the concatenated admin credential pair. The token
// proves knowledge of the configured email+password, not a stored identity.
type AdminClaims struct {
	Account string `json:"acct"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses session tokens with an explicit TTL policy.
// A zero TTL issues tokens without expiry.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(cfg config.AuthConfig) (*TokenIssuer, error) {
	if cfg.JwtSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	var ttl time.Duration
	if cfg.TokenTTL != "" {
		var err error
		ttl, err = time.ParseDuration(cfg.TokenTTL)
		if err != nil {
			return nil, errors.Wrap(err, "parse auth.token_ttl")
		}
	}
	return &TokenIssuer{secret: []byte(cfg.JwtSecret), ttl: ttl}, nil
}

func (t *TokenIssuer) registered() jwt.RegisteredClaims {
	claims := jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(time.Now())}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(t.ttl))
	}
	return claims
}

// IssueUser returns a signed token bound to the user id.
func (t *TokenIssuer) IssueUser(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{
		UserID:           userID,
		RegisteredClaims: t.registered(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign user token")
	}
	return signed, nil
}

// IssueAdmin returns a signed token over the concatenated credential pair.
func (t *TokenIssuer) IssueAdmin(account string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Account:          account,
		RegisteredClaims: t.registered(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign admin token")
	}
	return signed, nil
}

// ParseUser validates a user token and returns the bound user id.
func (t *TokenIssuer) ParseUser(tokenStr string) (int64, error) {
	var claims UserClaims
	if err := t.parse(tokenStr, &claims); err != nil {
		return 0, err
	}
	if claims.UserID == 0 {
		return 0, errors.New("token carries no user id")
	}
	return claims.UserID, nil
}

// ParseAdmin validates an admin token and returns the credential string.
func (t *TokenIssuer) ParseAdmin(tokenStr string) (string, error) {
	var claims AdminClaims
	if err := t.parse(tokenStr, &claims); err != nil {
		return "", err
	}
	return claims.Account, nil
}

func (t *TokenIssuer) parse(tokenStr string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
