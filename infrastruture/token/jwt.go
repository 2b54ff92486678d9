package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-carver/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	userIDClaim   = "userID"
	usernameClaim = "username"
)

var ErrInvalidToken = errors.New("invalid token")

// JwtService handles JWT operations.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a signed JWT carrying the user claims.
func (s *JwtService) Generate(claims i.Claims, expTime time.Duration) (string, error) {
	jwtClaims := jwt.MapClaims{
		"exp":         time.Now().UTC().Add(expTime).Unix(),
		"iss":         s.issuer,
		userIDClaim:   claims.UserID.String(),
		usernameClaim: claims.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (i.Claims, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return i.Claims{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return i.Claims{}, ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return i.Claims{}, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}

	rawID, _ := claims[userIDClaim].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return i.Claims{}, fmt.Errorf("%w: bad %s claim", ErrInvalidToken, userIDClaim)
	}
	username, _ := claims[usernameClaim].(string)

	return i.Claims{UserID: userID, Username: username}, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
