package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/config"
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// ListRecurringHandler returns all recurring templates.
func ListRecurringHandler(c *gin.Context) {
	var templates []models.RecurringCommitment
	if err := config.DB.Order("company_name ASC, concept ASC").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recurring commitments"})
		return
	}
	if templates == nil {
		templates = make([]models.RecurringCommitment, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": templates})
}

// CreateRecurringHandler registers a template. The formula is validated here
// so generation can assume it parses.
func CreateRecurringHandler(c *gin.Context) {
	var input models.RecurringCommitment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.DayOfMonth < 1 || input.DayOfMonth > 31 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Día del mes inválido, se espera 1-31"})
		return
	}
	if input.AmountFormula != "" {
		if _, err := govaluate.NewEvaluableExpression(input.AmountFormula); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Fórmula inválida '%s': %v", input.AmountFormula, err)})
			return
		}
	}

	input.Active = true
	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create recurring commitment"})
		return
	}
	c.JSON(http.StatusCreated, input)
}

// GeneratePlanInput selects the window to materialize.
type GeneratePlanInput struct {
	FromMonth int `json:"fromMonth" binding:"required,min=1,max=12"`
	FromYear  int `json:"fromYear" binding:"required"`
	Months    int `json:"months" binding:"required,min=1,max=24"`
}

// GenerateCommitmentPlanHandler materializes future commitments from a
// recurring template: one per month over the requested window, amounts
// computed by the template formula. Existing generated commitments in the
// window are replaced in the same transaction, so regenerating after editing
// the template is safe; hand-created commitments are never touched.
func GenerateCommitmentPlanHandler(c *gin.Context) {
	templateID := c.Param("id")

	var input GeneratePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var template models.RecurringCommitment
	if err := config.DB.First(&template, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plantilla no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !template.Active {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "La plantilla está inactiva"})
		return
	}

	var expression *govaluate.EvaluableExpression
	if template.AmountFormula != "" {
		var err error
		expression, err = govaluate.NewEvaluableExpression(template.AmountFormula)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Fórmula inválida '%s': %v", template.AmountFormula, err)})
			return
		}
	}

	start := time.Date(input.FromYear, time.Month(input.FromMonth), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, input.Months, 0)

	var generated []models.Commitment
	for cursor := start; cursor.Before(end); cursor = cursor.AddDate(0, 1, 0) {
		amount := template.BaseAmount
		if expression != nil {
			result, err := expression.Evaluate(map[string]interface{}{
				"base":  template.BaseAmount,
				"month": float64(cursor.Month()),
			})
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("No se pudo evaluar la fórmula: %v", err)})
				return
			}
			value, ok := result.(float64)
			if !ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "El resultado de la fórmula no es un número"})
				return
			}
			amount = value
		}

		due := dueDayInMonth(cursor.Year(), cursor.Month(), template.DayOfMonth)
		generated = append(generated, models.Commitment{
			Concept:         fmt.Sprintf("%s (%s)", template.Concept, due.Format("2006-01")),
			CompanyName:     template.CompanyName,
			BeneficiaryName: template.BeneficiaryName,
			Amount:          amount,
			DueDate:         &due,
			Status:          "pending",
			PaymentMethod:   template.PaymentMethod,
			RecurringID:     &template.ID,
		})
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"recurring_id = ? AND due_date >= ? AND due_date < ? AND status = ?",
			template.ID, start, end, "pending",
		).Delete(&models.Commitment{}).Error; err != nil {
			return err
		}
		if len(generated) > 0 {
			return tx.Create(&generated).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el plan de compromisos"})
		return
	}

	invalidateSummaryCache()
	c.JSON(http.StatusOK, gin.H{"message": "Plan generado", "count": len(generated)})
}

// dueDayInMonth clamps the configured day to the month's last day, so a
// template with day 31 still generates a February commitment.
func dueDayInMonth(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
