package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller"
	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/services"
)

type AuthController struct {
	DB        *gorm.DB
	Jwt       *services.JwtWrapper
	Verifiers map[string]services.ProviderVerifier
}

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type socialInput struct {
	Provider    string `json:"provider" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
}

// userPayload strips everything clients shouldn't see from a user record.
func userPayload(u *entity.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"name":     u.Name,
		"role":     u.Role,
		"provider": u.Provider,
	}
}

// Register creates an email-provider account and returns a fresh token.
func (ac *AuthController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	var existing entity.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := entity.User{
		Email:    input.Email,
		Password: string(hashed),
		Name:     input.Name,
		Role:     entity.RoleUser,
		Provider: entity.ProviderEmail,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		if controller.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := ac.Jwt.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userPayload(&user)})
}

// Login verifies email credentials. Social accounts must use their provider.
func (ac *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	var user entity.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil || user.Provider != entity.ProviderEmail {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := ac.Jwt.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userPayload(&user)})
}

// Social exchanges a provider access token for a local session. The browser
// OAuth dance happens client-side; the backend verifies the token with the
// provider and finds-or-creates the account.
func (ac *AuthController) Social(c *gin.Context) {
	var input socialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	verifier, ok := ac.Verifiers[input.Provider]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported provider"})
		return
	}

	profile, err := verifier.Verify(c.Request.Context(), input.AccessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	user, err := services.FindOrCreateUser(ac.DB, profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve account"})
		return
	}

	token, err := ac.Jwt.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
