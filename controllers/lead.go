package controllers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sbayrealty/brokerage-backend/crm"
	"github.com/sbayrealty/brokerage-backend/db"
	"github.com/sbayrealty/brokerage-backend/metrics"
	"github.com/sbayrealty/brokerage-backend/models"
	"github.com/sbayrealty/brokerage-backend/utils"
)

// dedupeStore is the slice of the Redis API the lead handler uses
type dedupeStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// leadDedupe is nil when Redis is not configured
var leadDedupe dedupeStore

// InitLeadDedupe wires the duplicate-submission guard at startup
func InitLeadDedupe(store dedupeStore) {
	leadDedupe = store
}

// LeadInput accepts both the current and the older form field names
type LeadInput struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Company           string `json:"company"`
	PropertyInterest  string `json:"property_interest"`
	WarehouseInterest string `json:"warehouse_interest"`
	WarehouseID       string `json:"warehouse_id"`
	SpaceRequirements string `json:"space_requirements"`
	BudgetRange       string `json:"budget_range"`
	PriceRange        string `json:"price_range"`
	SizeNeeded        string `json:"size_needed"`
	County            string `json:"county"`
	Timeline          string `json:"timeline"`
	Message           string `json:"message"`
	Source            string `json:"source"`
}

// CreateLead captures a web-form submission as a CRM lead
func CreateLead(c *fiber.Ctx) error {
	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Name == "" || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required lead information",
		})
	}

	// Older pages submit warehouse_* / price_range variants
	propertyInterest := input.PropertyInterest
	if propertyInterest == "" {
		propertyInterest = input.WarehouseInterest
	}
	budgetRange := input.BudgetRange
	if budgetRange == "" {
		budgetRange = input.PriceRange
	}
	source := input.Source
	if source == "" {
		source = "website_form"
	}

	// Suppress duplicate rapid submissions from the same address
	var dedupeKey string
	if leadDedupe != nil {
		dedupeKey = "lead:dedupe:" + input.Email
		set, err := leadDedupe.SetNX(c.Context(), dedupeKey, 1, 10*time.Minute).Result()
		if err != nil {
			log.Printf("Lead dedupe check failed: %v", err)
		} else if !set {
			return c.Status(fiber.StatusTooManyRequests).JSON(utils.ErrorResponse{
				Message: "We already received your inquiry. Our team will reach out shortly.",
			})
		}
	}

	lead := models.Lead{
		Title:             fmt.Sprintf("Website Inquiry - %s", input.Name),
		Type:              "general",
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Company:           input.Company,
		PropertyInterest:  propertyInterest,
		SpaceRequirements: input.SpaceRequirements,
		BudgetRange:       budgetRange,
		SizeNeeded:        input.SizeNeeded,
		County:            input.County,
		Timeline:          input.Timeline,
		Message:           input.Message,
		Source:            source,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lead).Error; err != nil {
			return err
		}
		activity := models.LeadActivity{
			LeadID:       lead.ID,
			ActivityType: "note",
			Title:        "Lead received",
			Description:  fmt.Sprintf("Lead captured from %s", source),
			Metadata: models.Metadata{
				"source":       source,
				"warehouse_id": input.WarehouseID,
			},
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		// The submission never landed; release the key so a retry goes through
		if leadDedupe != nil && dedupeKey != "" {
			if delErr := leadDedupe.Del(c.Context(), dedupeKey).Err(); delErr != nil {
				log.Printf("Failed to release dedupe key %s: %v", dedupeKey, delErr)
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create lead",
			Error:   err.Error(),
		})
	}

	metrics.IncLeadReceived(source)
	log.Printf("Lead created with ID: %d", lead.ID)

	// Forward to the CRM so the admin email alert fires; best effort
	crmClient := crm.NewClientFromEnv()
	if err := crmClient.NotifyLead(c.Context(), crm.LeadNotification{
		Name:             lead.Name,
		Email:            lead.Email,
		Phone:            lead.Phone,
		Company:          lead.Company,
		PropertyInterest: lead.PropertyInterest,
		Message:          lead.Message,
		Source:           lead.Source,
		Priority:         string(lead.Priority),
		Type:             lead.Type,
	}); err != nil {
		log.Printf("CRM notification error: %v", err)
	}

	go func(lead models.Lead) {
		if err := utils.SendAdminEmail(
			fmt.Sprintf("New Lead: %s", lead.Name),
			newLeadEmailBody(&lead),
		); err != nil {
			log.Printf("Failed to send lead notification email: %v", err)
		}
	}(lead)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Lead submitted successfully",
		"leadId":  lead.ID,
	})
}

func newLeadEmailBody(lead *models.Lead) string {
	return fmt.Sprintf(`
		<p>A new lead just came in from the website.</p>
		<ul>
			<li><strong>Name:</strong> %s</li>
			<li><strong>Email:</strong> %s</li>
			<li><strong>Phone:</strong> %s</li>
			<li><strong>Company:</strong> %s</li>
			<li><strong>Property Interest:</strong> %s</li>
			<li><strong>Timeline:</strong> %s</li>
		</ul>
		<p>%s</p>
	`, lead.Name, lead.Email, lead.Phone, lead.Company, lead.PropertyInterest, lead.Timeline, lead.Message)
}
