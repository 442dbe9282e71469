package availability

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sbayrealty/brokerage-backend/models"
)

// GormStore serves all three resolver lookups from the CRM database
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CalendarFor(ctx context.Context, propertyID string) (*CalendarConfig, error) {
	var calendar models.PropertyCalendar
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&calendar).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &CalendarConfig{ID: calendar.ID, IsActive: calendar.IsActive}, nil
}

func (s *GormStore) ActiveRules(ctx context.Context, propertyID string, dayOfWeek int) ([]Rule, error) {
	var rows []models.AvailabilityRule
	err := s.db.WithContext(ctx).
		Where("property_id = ? AND day_of_week = ? AND is_active = ?", propertyID, dayOfWeek, true).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, Rule{
			ID:        row.ID,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}
	return rules, nil
}

func (s *GormStore) IsBlocked(ctx context.Context, calendarID, date string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.BlockedDate{}).
		Where("calendar_id = ? AND blocked_date = ? AND is_active = ?", calendarID, date, true).
		Count(&count).Error
	return count > 0, err
}
