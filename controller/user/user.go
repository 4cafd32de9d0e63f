package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller"
	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/middlewares"
)

type UserController struct {
	DB *gorm.DB
}

type userInput struct {
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"name" binding:"required"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     entity.Role `json:"role" binding:"required,oneof=user admin super_admin"`
}

func payload(u *entity.User) gin.H {
	return gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role}
}

// GetAll lists accounts. Super-admin gated at the route.
func (uc *UserController) GetAll(c *gin.Context) {
	var users []entity.User
	if err := uc.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get users"})
		return
	}
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, payload(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetByID returns one account. Super-admin gated at the route.
func (uc *UserController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var u entity.User
	if err := uc.DB.First(&u, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, payload(&u))
}

// Create adds an account with an explicit role. Super-admin gated at the
// route.
func (uc *UserController) Create(c *gin.Context) {
	var input userInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	u := entity.User{
		Email:    input.Email,
		Name:     input.Name,
		Password: string(hashed),
		Role:     input.Role,
		Provider: entity.ProviderEmail,
	}
	if err := uc.DB.Create(&u).Error; err != nil {
		if controller.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, payload(&u))
}

// GetBookings lists one user's bookings for the user themselves or an
// admin.
func (uc *UserController) GetBookings(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if !middlewares.OwnerOrRole(c, uint(id), entity.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var bookings []entity.Booking
	if err := uc.DB.Preload("Trip").Where("user_id = ?", id).Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}
