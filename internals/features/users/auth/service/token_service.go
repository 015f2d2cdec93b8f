package service

import (
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/configs"
	authModel "monrepetiteur_backend/internals/features/users/auth/model"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidRefreshToken = errors.New("refresh token invalide ou expiré")

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func signToken(user *userModel.UserModel, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role,
		"full_name": user.FullName,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func hashRefreshToken(raw string) []byte {
	sum := sha256.Sum256([]byte(raw))
	return sum[:]
}

// IssueTokenPair signs a fresh access/refresh pair and persists the
// refresh token hash. Only the hash ever touches the database.
func IssueTokenPair(db *gorm.DB, user *userModel.UserModel, userAgent, ip string) (*TokenPair, error) {
	access, err := signToken(user, configs.JWTSecret, AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := signToken(user, configs.JWTRefreshSecret, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	record := authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefreshToken(refresh),
		ExpiresAt: time.Now().Add(RefreshTokenTTL),
	}
	if userAgent != "" {
		record.UserAgent = &userAgent
	}
	if ip != "" {
		record.IP = &ip
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RotateRefreshToken validates a refresh token, revokes its stored
// record and issues a new pair. An already-revoked or unknown token is
// rejected so a stolen token can only be replayed once at most.
func RotateRefreshToken(db *gorm.DB, rawToken, userAgent, ip string) (*TokenPair, *userModel.UserModel, error) {
	parsed, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("méthode de signature inattendue")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil, ErrInvalidRefreshToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, ErrInvalidRefreshToken
	}
	idStr, _ := claims["id"].(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}

	var record authModel.RefreshToken
	if err := db.Where("user_id = ? AND token_hash = ? AND revoked_at IS NULL AND expires_at > ?",
		userID, hashRefreshToken(rawToken), time.Now()).
		First(&record).Error; err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	if !user.IsActive {
		return nil, nil, ErrInvalidRefreshToken
	}

	now := time.Now()
	if err := db.Model(&record).Update("revoked_at", &now).Error; err != nil {
		return nil, nil, err
	}

	pair, err := IssueTokenPair(db, &user, userAgent, ip)
	if err != nil {
		return nil, nil, err
	}
	return pair, &user, nil
}

// RevokeUserRefreshTokens invalidates every live refresh token of a
// user, used on logout and on password change.
func RevokeUserRefreshTokens(db *gorm.DB, userID uuid.UUID) error {
	now := time.Now()
	return db.Model(&authModel.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).Error
}
