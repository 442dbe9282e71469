package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sbayrealty/brokerage-backend/db"
	"github.com/sbayrealty/brokerage-backend/models"
)

// parsePagination clamps the page/limit query values. Garbage or
// non-positive input falls back to the defaults, so limit is never zero.
func parsePagination(pageQ, limitQ string) (page, limit int) {
	page, _ = strconv.Atoi(pageQ)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(limitQ)
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

// listedProperties applies the public listing filters, shared between the
// page query and the count query so their results agree
func listedProperties(q *gorm.DB, county string) *gorm.DB {
	q = q.Where("is_listed = ?", true)
	if county != "" {
		q = q.Where("county = ?", county)
	}
	return q
}

// GetAllProperties returns listed properties for the marketing site
func GetAllProperties(c *fiber.Ctx) error {
	var properties []models.Property

	page, limit := parsePagination(c.Query("page", "1"), c.Query("limit", "20"))
	offset := (page - 1) * limit
	county := c.Query("county")

	err := listedProperties(db.DB, county).
		Limit(limit).Offset(offset).Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch properties",
		})
	}

	var count int64
	listedProperties(db.DB.Model(&models.Property{}), county).Count(&count)

	return c.JSON(fiber.Map{
		"properties": properties,
		"total":      count,
		"page":       page,
		"limit":      limit,
		"pages":      (int(count) + limit - 1) / limit,
	})
}

// GetProperty returns a single listing
func GetProperty(c *fiber.Ctx) error {
	id := c.Params("id")

	var property models.Property
	if err := db.DB.Where("id = ? AND is_listed = ?", id, true).First(&property).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	return c.JSON(property)
}
