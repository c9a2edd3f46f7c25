package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("token invalid")

// Claims identify a user and the token version they were issued against.
// Bumping a user's version revokes every token issued before it.
type Claims struct {
	UserID       uint64 `json:"user_id"`
	TokenVersion uint64 `json:"token_version"`
	Type         string `json:"type"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 tokens.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

func (s *Signer) generate(userID, tokenVersion uint64, typ string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:       userID,
		TokenVersion: tokenVersion,
		Type:         typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Signer) GenerateAccessToken(userID, tokenVersion uint64) (string, error) {
	return s.generate(userID, tokenVersion, tokenTypeAccess, accessTokenTTL)
}

func (s *Signer) GenerateRefreshToken(userID, tokenVersion uint64) (string, error) {
	return s.generate(userID, tokenVersion, tokenTypeRefresh, refreshTokenTTL)
}

func (s *Signer) verify(tokenString, typ string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Type != typ || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccessToken parses an access token and returns its claims.
func (s *Signer) VerifyAccessToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, tokenTypeAccess)
}

// VerifyRefreshToken parses a refresh token and returns its claims.
func (s *Signer) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, tokenTypeRefresh)
}
