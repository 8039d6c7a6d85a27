package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/internal/report"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// PaymentInput is the payload for recording a payment. When CommitmentID is
// set the payment counts against that commitment; otherwise it is a loose
// company payment.
type PaymentInput struct {
	CommitmentID *uint   `json:"commitmentId"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Date         string  `json:"date" binding:"required"` // YYYY-MM-DD
	Concept      string  `json:"concept"`
	CompanyName  string  `json:"companyName"`
	Method       string  `json:"method"`
	Is4x1000Tax  bool    `json:"is4x1000Tax"`
}

// ListPaymentsHandler returns payments most recent first, the ordering the
// movement list in the UI relies on.
func ListPaymentsHandler(c *gin.Context) {
	var payments []models.Payment
	var totalRows int64

	query := config.DB.Model(&models.Payment{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(concept) LIKE ? OR LOWER(company_name) LIKE ?", pattern, pattern)
	}
	if commitmentID := c.Query("commitment_id"); commitmentID != "" {
		query = query.Where("commitment_id = ?", commitmentID)
	}
	if c.Query("include_tax") != "true" {
		query = query.Where("is_4x1000_tax = false")
	}
	if from := c.Query("date_from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	query = query.Order("date DESC")

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count payments"})
		return
	}
	if err := query.Scopes(Paginate(c)).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	if payments == nil {
		payments = make([]models.Payment, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, payments, totalRows))
}

// CreatePaymentHandler records a payment. When the cumulative non-tax amount
// against the linked commitment reaches its amount, the commitment is marked
// settled — the only place that writes the settled hints.
func CreatePaymentHandler(c *gin.Context) {
	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de fecha inválido, se espera YYYY-MM-DD"})
		return
	}

	payment := models.Payment{
		CommitmentID:  input.CommitmentID,
		Amount:        input.Amount,
		Date:          date,
		Concept:       input.Concept,
		CompanyName:   input.CompanyName,
		Method:        input.Method,
		Is4x1000Tax:   input.Is4x1000Tax,
		ReceiptNumber: uuid.NewString(),
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if payment.CommitmentID == nil || payment.Is4x1000Tax {
			return nil
		}

		var commitment models.Commitment
		if err := tx.First(&commitment, *payment.CommitmentID).Error; err != nil {
			return err
		}

		var totalPaid float64
		tx.Model(&models.Payment{}).
			Where("commitment_id = ? AND is_4x1000_tax = false", commitment.ID).
			Select("coalesce(sum(amount), 0)").
			Row().Scan(&totalPaid)

		if totalPaid >= commitment.Amount {
			return tx.Model(&commitment).
				Updates(map[string]interface{}{"status": "paid", "paid": true}).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Compromiso no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record payment"})
		return
	}

	invalidateSummaryCache()
	c.JSON(http.StatusCreated, payment)
}

// GetPaymentReceiptHandler returns the receipt payload for a payment: the
// stored fields plus the amount written out in words, for the printable
// receipt. Tax entries have no receipt.
func GetPaymentReceiptHandler(c *gin.Context) {
	id := c.Param("id")

	var payment models.Payment
	if err := config.DB.Preload("Commitment").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pago no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if payment.Is4x1000Tax {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Los registros de impuesto 4x1000 no generan recibo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receiptNumber": payment.ReceiptNumber,
		"payment":       payment,
		"amountInWords": amountInWords(payment.Amount),
		"issuedAt":      report.NormalizeDay(time.Now()),
	})
}

// amountInWords spells out a receipt amount. num2words only handles the whole
// part, so the cents ride along in the customary NN/100 notation instead of
// being dropped.
func amountInWords(v float64) string {
	whole := int(v)
	cents := int(math.Round((v - float64(whole)) * 100))
	if cents >= 100 {
		whole++
		cents -= 100
	}
	return fmt.Sprintf("%s con %02d/100", num2words.Convert(whole), cents)
}

// DeletePaymentHandler removes a mistaken entry. Admin only; the linked
// commitment's settled hints are intentionally left untouched — corrections
// to classification always flow through recomputation, not cached state.
func DeletePaymentHandler(c *gin.Context) {
	id := c.Param("id")
	if err := config.DB.Delete(&models.Payment{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		return
	}
	invalidateSummaryCache()
	c.JSON(http.StatusOK, gin.H{"message": "Pago eliminado"})
}
