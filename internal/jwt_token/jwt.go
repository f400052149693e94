package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"greentax/pkg/domain"
	dErrors "greentax/pkg/domain-errors"
)

// Claims represents the JWT claims carried by bearer tokens. Tokens are
// issued elsewhere; this service only validates them.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService validates (and, for tooling and tests, mints) HS256 tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
}

func NewJWTService(signingKey string, issuer string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
}

// GenerateAccessToken signs a token for the given actor.
func (s *JWTService) GenerateAccessToken(userID domain.UserID, role domain.Role, expiresIn time.Duration) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID.String(),
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// ValidateActor validates a token and parses its actor claims.
func (s *JWTService) ValidateActor(tokenString string) (domain.UserID, domain.Role, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return domain.UserID{}, "", err
	}
	userID, err := domain.ParseUserID(claims.UserID)
	if err != nil {
		return domain.UserID{}, "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token claims")
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.UserID{}, "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token claims")
	}
	return userID, role, nil
}
