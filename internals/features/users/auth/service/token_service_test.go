package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/configs"
	authModel "monrepetiteur_backend/internals/features/users/auth/model"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		FullName: "Awa Koné",
		Phone:    "+2250701020304",
		Email:    "2250701020304@monrepetiteur.local",
		Password: "irrelevant",
		Role:     "prestataire",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestIssueTokenPair(t *testing.T) {
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	db := openTestDB(t)
	user := seedUser(t, db)

	pair, err := IssueTokenPair(db, user, "go-test", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	parsed, err := jwt.Parse(pair.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, "prestataire", claims["role"])
	assert.Equal(t, "Awa Koné", claims["full_name"])

	var records []authModel.RefreshToken
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, user.ID, records[0].UserID)
	assert.Len(t, records[0].TokenHash, 32)
	assert.Nil(t, records[0].RevokedAt)
}

func TestRotateRefreshToken(t *testing.T) {
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	db := openTestDB(t)
	user := seedUser(t, db)

	pair, err := IssueTokenPair(db, user, "go-test", "127.0.0.1")
	require.NoError(t, err)

	newPair, rotatedUser, err := RotateRefreshToken(db, pair.RefreshToken, "go-test", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, rotatedUser.ID)
	assert.NotEmpty(t, newPair.AccessToken)

	// The consumed token is revoked: replaying it must fail.
	_, _, err = RotateRefreshToken(db, pair.RefreshToken, "go-test", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRotateRefreshTokenRejectsGarbage(t *testing.T) {
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	db := openTestDB(t)

	_, _, err := RotateRefreshToken(db, "not-a-jwt", "go-test", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRotateRefreshTokenRejectsInactiveUser(t *testing.T) {
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	db := openTestDB(t)
	user := seedUser(t, db)

	pair, err := IssueTokenPair(db, user, "go-test", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	_, _, err = RotateRefreshToken(db, pair.RefreshToken, "go-test", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeUserRefreshTokens(t *testing.T) {
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
	db := openTestDB(t)
	user := seedUser(t, db)

	_, err := IssueTokenPair(db, user, "go-test", "127.0.0.1")
	require.NoError(t, err)
	_, err = IssueTokenPair(db, user, "go-test", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, RevokeUserRefreshTokens(db, user.ID))

	var live int64
	require.NoError(t, db.Model(&authModel.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", user.ID).
		Count(&live).Error)
	assert.Zero(t, live)

	var all int64
	require.NoError(t, db.Model(&authModel.RefreshToken{}).Count(&all).Error)
	assert.EqualValues(t, 2, all)
}
