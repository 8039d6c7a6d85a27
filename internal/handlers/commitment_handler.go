package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// CommitmentInput is the payload for creating or updating a commitment.
type CommitmentInput struct {
	Concept         string  `json:"concept" binding:"required"`
	CompanyName     string  `json:"companyName" binding:"required"`
	BeneficiaryName string  `json:"beneficiaryName"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	DueDate         string  `json:"dueDate" binding:"required"` // YYYY-MM-DD
	Observations    string  `json:"observations"`
	PaymentMethod   string  `json:"paymentMethod"`
}

// ListCommitmentsHandler returns a filtered, paginated commitment list,
// ascending by due date (the ordering the dashboard cards rely on).
func ListCommitmentsHandler(c *gin.Context) {
	var commitments []models.Commitment
	var totalRows int64

	query := config.DB.Model(&models.Commitment{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(concept) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(beneficiary_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if company := c.Query("company"); company != "" {
		query = query.Where("company_name = ?", company)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("due_from"); from != "" {
		query = query.Where("due_date >= ?", from)
	}
	if to := c.Query("due_to"); to != "" {
		query = query.Where("due_date <= ?", to)
	}

	query = query.Order("due_date ASC NULLS LAST")

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count commitments"})
		return
	}
	if err := query.Scopes(Paginate(c)).Find(&commitments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commitments"})
		return
	}

	if commitments == nil {
		commitments = make([]models.Commitment, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, commitments, totalRows))
}

// GetCommitmentHandler returns one commitment with its non-tax payments.
func GetCommitmentHandler(c *gin.Context) {
	id := c.Param("id")

	var commitment models.Commitment
	if err := config.DB.First(&commitment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Compromiso no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var payments []models.Payment
	config.DB.Where("commitment_id = ? AND is_4x1000_tax = false", commitment.ID).
		Order("date DESC").
		Find(&payments)

	c.JSON(http.StatusOK, gin.H{"commitment": commitment, "payments": payments})
}

// CreateCommitmentHandler registers a new obligation.
func CreateCommitmentHandler(c *gin.Context) {
	var input CommitmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// Parsed in the server zone: the stored instant must be midnight on the
	// same calendar day the classifier evaluates in.
	due, err := time.ParseInLocation("2006-01-02", input.DueDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de fecha inválido, se espera YYYY-MM-DD"})
		return
	}

	commitment := models.Commitment{
		Concept:         input.Concept,
		CompanyName:     input.CompanyName,
		BeneficiaryName: input.BeneficiaryName,
		Amount:          input.Amount,
		DueDate:         &due,
		Status:          "pending",
		Observations:    input.Observations,
		PaymentMethod:   input.PaymentMethod,
	}
	if err := config.DB.Create(&commitment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create commitment"})
		return
	}

	invalidateSummaryCache()
	c.JSON(http.StatusCreated, commitment)
}

// UpdateCommitmentHandler edits descriptive fields and the due date. The
// settled flags are owned by the payment path and cannot be set here.
func UpdateCommitmentHandler(c *gin.Context) {
	id := c.Param("id")

	var commitment models.Commitment
	if err := config.DB.First(&commitment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Compromiso no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var input CommitmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	due, err := time.ParseInLocation("2006-01-02", input.DueDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de fecha inválido, se espera YYYY-MM-DD"})
		return
	}

	updates := map[string]interface{}{
		"concept":          input.Concept,
		"company_name":     input.CompanyName,
		"beneficiary_name": input.BeneficiaryName,
		"amount":           input.Amount,
		"due_date":         due,
		"observations":     input.Observations,
		"payment_method":   input.PaymentMethod,
	}
	if err := config.DB.Model(&commitment).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update commitment"})
		return
	}

	invalidateSummaryCache()
	c.JSON(http.StatusOK, commitment)
}

// DeleteCommitmentHandler soft-deletes a commitment. Admin only.
func DeleteCommitmentHandler(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Commitment{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete commitment"})
		return
	}
	invalidateSummaryCache()
	c.JSON(http.StatusOK, gin.H{"message": "Compromiso eliminado"})
}
