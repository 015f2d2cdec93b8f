package controller

import (
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/configs"
	"monrepetiteur_backend/internals/constants"
	authDTO "monrepetiteur_backend/internals/features/users/auth/dto"
	authHelper "monrepetiteur_backend/internals/features/users/auth/helper"
	authModel "monrepetiteur_backend/internals/features/users/auth/model"
	"monrepetiteur_backend/internals/features/users/auth/service"
	profileModel "monrepetiteur_backend/internals/features/users/profile/model"
	userDTO "monrepetiteur_backend/internals/features/users/user/dto"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
	helper "monrepetiteur_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates an account keyed by phone number. A prestataire
// gets an empty tutor profile right away so the completeness flag has
// a row to live on.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	phone, ok := authHelper.NormalizePhone(req.Phone)
	if !ok {
		return helper.JsonValidationError(c, map[string][]string{
			"Phone": {"format de téléphone invalide (+225 suivi de 10 chiffres)"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de sécuriser le mot de passe")
	}

	user := userModel.UserModel{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    phone,
		Email:    authHelper.PhoneToEmail(phone),
		Password: string(hash),
		Role:     req.Role,
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if user.Role == constants.RolePrestataire {
			return tx.Create(&profileModel.TutorProfileModel{UserID: user.ID}).Error
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return helper.JsonError(c, fiber.StatusConflict, "Un compte existe déjà avec ce numéro de téléphone")
		}
		log.Println("[ERROR] register:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de créer le compte")
	}

	pair, err := service.IssueTokenPair(ac.DB, &user, c.Get("User-Agent"), c.IP())
	if err != nil {
		log.Println("[ERROR] issue tokens:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de générer les jetons")
	}

	return helper.JsonCreated(c, "Compte créé", fiber.Map{
		"user":   userDTO.FromModel(&user),
		"tokens": pair,
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	phone, ok := authHelper.NormalizePhone(req.Phone)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Téléphone ou mot de passe incorrect")
	}

	var user userModel.UserModel
	if err := ac.DB.Where("phone = ?", phone).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Téléphone ou mot de passe incorrect")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Téléphone ou mot de passe incorrect")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Votre compte a été désactivé")
	}

	pair, err := service.IssueTokenPair(ac.DB, &user, c.Get("User-Agent"), c.IP())
	if err != nil {
		log.Println("[ERROR] issue tokens:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de générer les jetons")
	}

	return helper.JsonOK(c, "Connexion réussie", fiber.Map{
		"user":   userDTO.FromModel(&user),
		"tokens": pair,
	})
}

// LoginGoogle matches an existing account by the email embedded in the
// Google ID token. There is no auto-provisioning: accounts are created
// through Register, by phone.
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authDTO.LoginGoogleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Jeton Google invalide")
	}
	claims, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil || claims.Email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Jeton Google invalide")
	}

	var user userModel.UserModel
	if err := ac.DB.Where("email = ?", claims.Email).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Aucun compte associé à cet email Google")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Votre compte a été désactivé")
	}

	if user.GoogleID == nil || *user.GoogleID == "" {
		sub := claims.Sub
		if err := ac.DB.Model(&user).Update("google_id", &sub).Error; err != nil {
			log.Println("[WARN] link google id:", err)
		}
	}

	pair, err := service.IssueTokenPair(ac.DB, &user, c.Get("User-Agent"), c.IP())
	if err != nil {
		log.Println("[ERROR] issue tokens:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de générer les jetons")
	}

	return helper.JsonOK(c, "Connexion réussie", fiber.Map{
		"user":   userDTO.FromModel(&user),
		"tokens": pair,
	})
}

func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	pair, user, err := service.RotateRefreshToken(ac.DB, req.RefreshToken, c.Get("User-Agent"), c.IP())
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		log.Println("[ERROR] rotate refresh token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de renouveler la session")
	}

	return helper.JsonOK(c, "Session renouvelée", fiber.Map{
		"user":   userDTO.FromModel(user),
		"tokens": pair,
	})
}

// Logout blacklists the presented access token until its natural
// expiry and revokes the user's refresh tokens.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	raw := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	raw = strings.TrimSpace(raw)
	if raw != "" {
		entry := authModel.TokenBlacklist{
			Token:     raw,
			ExpiredAt: time.Now().Add(service.AccessTokenTTL),
		}
		if err := ac.DB.Create(&entry).Error; err != nil {
			log.Println("[WARN] blacklist token:", err)
		}
	}

	if err := service.RevokeUserRefreshTokens(ac.DB, userID); err != nil {
		log.Println("[WARN] revoke refresh tokens:", err)
	}

	return helper.JsonOK(c, "Déconnexion réussie", nil)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur introuvable")
	}
	return helper.JsonOK(c, "", userDTO.FromModel(&user))
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Non authentifié")
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur introuvable")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Ancien mot de passe incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de sécuriser le mot de passe")
	}
	if err := ac.DB.Model(&user).Update("password", string(hash)).Error; err != nil {
		log.Println("[ERROR] change password:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de modifier le mot de passe")
	}

	// Force every other session to re-authenticate.
	if err := service.RevokeUserRefreshTokens(ac.DB, userID); err != nil {
		log.Println("[WARN] revoke refresh tokens:", err)
	}

	return helper.JsonUpdated(c, "Mot de passe modifié", nil)
}
