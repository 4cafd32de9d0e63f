package legal

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller"
	"github.com/gtwndtl/travelbook-backend/entity"
)

type LegalController struct {
	DB *gorm.DB
}

type legalInput struct {
	Version  string `json:"version" binding:"required"`
	Content  string `json:"content" binding:"required"`
	IsActive bool   `json:"isActive"`
}

func (li *legalInput) toDocument() entity.LegalDocument {
	doc := entity.LegalDocument{
		Version:  li.Version,
		Content:  li.Content,
		IsActive: li.IsActive,
	}
	if li.IsActive {
		now := time.Now()
		doc.PublishedAt = &now
	}
	return doc
}

// ---- privacy policy ----

// GetPrivacyPolicies lists all versions, newest first. Admin-gated at the
// route.
func (lc *LegalController) GetPrivacyPolicies(c *gin.Context) {
	var policies []entity.PrivacyPolicy
	if err := lc.DB.Order("created_at DESC").Find(&policies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch privacy policies"})
		return
	}
	c.JSON(http.StatusOK, policies)
}

// GetActivePrivacyPolicy returns the live document. Public; the most
// recently published active version wins.
func (lc *LegalController) GetActivePrivacyPolicy(c *gin.Context) {
	var policy entity.PrivacyPolicy
	err := lc.DB.Where("is_active = ?", true).Order("published_at DESC").First(&policy).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active privacy policy found"})
		return
	}
	c.JSON(http.StatusOK, policy)
}

// CreatePrivacyPolicy inserts a new version. Publishing an active version
// deactivates every other one in the same transaction, so at most one stays
// active.
func (lc *LegalController) CreatePrivacyPolicy(c *gin.Context) {
	var input legalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	policy := entity.PrivacyPolicy{LegalDocument: input.toDocument()}
	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsActive {
			if err := tx.Model(&entity.PrivacyPolicy{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&policy).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create privacy policy"})
		return
	}
	c.JSON(http.StatusCreated, policy)
}

// ---- terms of service ----

// GetTermsOfService lists all versions, newest first. Admin-gated at the
// route.
func (lc *LegalController) GetTermsOfService(c *gin.Context) {
	var terms []entity.TermsOfService
	if err := lc.DB.Order("created_at DESC").Find(&terms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch terms of service"})
		return
	}
	c.JSON(http.StatusOK, terms)
}

// GetActiveTermsOfService returns the live document. Public.
func (lc *LegalController) GetActiveTermsOfService(c *gin.Context) {
	var terms entity.TermsOfService
	err := lc.DB.Where("is_active = ?", true).Order("published_at DESC").First(&terms).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active terms of service found"})
		return
	}
	c.JSON(http.StatusOK, terms)
}

// CreateTermsOfService mirrors CreatePrivacyPolicy for the terms table.
func (lc *LegalController) CreateTermsOfService(c *gin.Context) {
	var input legalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	terms := entity.TermsOfService{LegalDocument: input.toDocument()}
	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsActive {
			if err := tx.Model(&entity.TermsOfService{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&terms).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create terms of service"})
		return
	}
	c.JSON(http.StatusCreated, terms)
}
