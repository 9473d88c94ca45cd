package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

// PassConfig defines how attendee passes are signed.
type PassConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// PassService issues and validates attendee passes.
type PassService struct {
	config PassConfig
	now    func() time.Time
}

// NewPassService constructs a PassService.
func NewPassService(config PassConfig) *PassService {
	if config.Expiry <= 0 {
		config.Expiry = 12 * time.Hour
	}
	return &PassService{config: config, now: time.Now}
}

// Issue signs a pass for a stored registration.
func (s *PassService) Issue(reg models.Registration) (*models.IssuedPass, error) {
	if s.config.Secret == "" {
		return nil, errors.New("pass secret not configured")
	}
	issuedAt := s.now().UTC()
	claims := &models.PassClaims{
		RegistrationID: reg.ID,
		Email:          reg.Email,
		FullName:       reg.FullName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   reg.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiry)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign pass: %w", err)
	}
	return &models.IssuedPass{Token: signed, ExpiresIn: int64(s.config.Expiry.Seconds())}, nil
}

// Validate parses a pass and returns its claims.
func (s *PassService) Validate(token string) (*models.PassClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &models.PassClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid attendee pass")
	}
	claims, ok := parsed.Claims.(*models.PassClaims)
	if !ok || !parsed.Valid || claims.RegistrationID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid attendee pass")
	}
	if s.config.Issuer != "" && claims.Issuer != s.config.Issuer {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid attendee pass")
	}
	return claims, nil
}
