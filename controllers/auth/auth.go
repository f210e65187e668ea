package authController

import (
	"errors"
	"log"
	"time"

	"quizroom/config"
	"quizroom/database"
	"quizroom/middleware"
	"quizroom/models"
	"quizroom/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a new teacher or student account and sends the
// email-confirmation link. The admin role is never self-assignable.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*models.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// Raw token goes out in the email, only the hash is stored
	rawToken := utils.GenerateSecureToken()

	newUser := models.User{
		FirstName:         reqData.FirstName,
		LastName:          reqData.LastName,
		Email:             reqData.Email,
		Password:          string(hashedPassword),
		Role:              reqData.Role,
		Avatar:            models.DefaultAvatar,
		ConfirmEmailToken: utils.HashToken(rawToken),
	}

	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	utils.SendConfirmationEmail(newUser.Email, newUser.FullName(), rawToken)

	// Gravatar probe runs off the request path
	go func(id uint, email string) {
		if avatar := utils.ResolveAvatar(email); avatar != models.DefaultAvatar {
			database.Database.Db.Model(&models.User{}).Where("id = ?", id).Update("avatar", avatar)
		}
	}(newUser.ID, newUser.Email)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully. Please confirm your email.", newUser)
}

// ConfirmEmail matches the hashed confirmation token and activates the
// account.
func ConfirmEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Confirmation token is required!", nil)
	}

	var user models.User
	err := database.Database.Db.
		Where("confirm_email_token = ?", utils.HashToken(token)).
		First(&user).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid confirmation token!", nil)
	}

	user.IsEmailConfirmed = true
	user.ConfirmEmailToken = ""
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error confirming email: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email confirmed successfully!", nil)
}

// Login verifies credentials and issues a signed JWT carrying the user
// id and role.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*models.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsEmailConfirmed {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not confirmed!", nil)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating last login: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile.
func Me(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}

// ForgotPassword issues a reset token valid for ten minutes. The reply
// is the same whether or not the account exists.
func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*models.ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err == nil {
		rawToken := utils.GenerateSecureToken()
		expire := time.Now().Add(10 * time.Minute)
		user.ResetPasswordToken = utils.HashToken(rawToken)
		user.ResetPasswordExpire = &expire

		if err := database.Database.Db.Save(&user).Error; err != nil {
			log.Printf("Error saving reset token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		utils.SendResetPasswordEmail(user.Email, user.FullName(), rawToken)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "If that email is registered, a reset link has been sent.", nil)
}

// ResetPassword sets a new password for a valid, unexpired reset token
// and clears the token fields.
func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*models.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	err := database.Database.Db.
		Where("reset_password_token = ? AND reset_password_expire > ?", utils.HashToken(c.Params("token")), time.Now()).
		First(&user).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired reset token!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error resetting password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", nil)
}
