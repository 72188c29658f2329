package jwtauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken возвращается для неподписанного, просроченного или искаженного токена
	ErrInvalidToken = errors.New("jwtauth: invalid or expired token")

	// ErrMissingToken возвращается, когда заголовок Authorization отсутствует или не Bearer
	ErrMissingToken = errors.New("jwtauth: authorization header must be 'Bearer {token}'")

	// ErrEmptySecret возвращается при создании менеджера без секрета
	ErrEmptySecret = errors.New("jwtauth: empty signing secret")
)

// Claims утверждения токена владельца бизнеса
type Claims struct {
	jwt.RegisteredClaims
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	BusinessID int64  `json:"business_id"`
}

// Manager выпускает и проверяет HS256 токены
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	parser *jwt.Parser
	now    func() time.Time
}

// NewManager создает менеджер токенов
func NewManager(secret string, issuer string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithExpirationRequired(),
		),
		now: time.Now,
	}, nil
}

// Issue выпускает подписанный токен для пользователя
func (m *Manager) Issue(userID int64, email, role string, businessID int64) (string, error) {
	now := m.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID:     userID,
		Email:      email,
		Role:       role,
		BusinessID: businessID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	str, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwtauth: signing token: %w", err)
	}

	return str, nil
}

// Parse проверяет подпись, срок действия и издателя токена
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	var claims Claims

	token, err := m.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if m.issuer != "" && claims.Issuer != m.issuer {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}

	return &claims, nil
}

// ParseBearer извлекает токен из значения заголовка Authorization и проверяет его
func (m *Manager) ParseBearer(header string) (*Claims, error) {
	const prefix = "Bearer "

	if !strings.HasPrefix(header, prefix) {
		return nil, ErrMissingToken
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	return m.Parse(tokenStr)
}
