package services

import (
	"log"
	"time"

	"github.com/homegenie-services/homegenie-api/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService sends day-before visit reminders for scheduled items
type ReminderService struct {
	db *gorm.DB
}

// NewReminderService creates a reminder service over the given database
func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// StartScheduler runs the reminder job every day at 8 AM
func (s *ReminderService) StartScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("0 8 * * *", s.SendVisitReminders); err != nil {
		log.Printf("Failed to schedule visit reminders: %v", err)
		return c
	}
	c.Start()
	log.Println("Visit reminder scheduler started")
	return c
}

// SendVisitReminders notifies every customer with an item scheduled for
// tomorrow. One reminder per order, even when several items fall on the
// same day.
func (s *ReminderService) SendVisitReminders() {
	log.Println("Starting visit reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var items []models.OrderItem
	err := s.db.Where("scheduled_date >= ? AND scheduled_date < ? AND status IN ?",
		dayStart, dayEnd,
		[]string{models.ItemStatusAssigned, models.ItemStatusScheduled}).
		Find(&items).Error
	if err != nil {
		log.Printf("Failed to fetch scheduled items: %v", err)
		return
	}

	notified := make(map[uint]bool)
	for _, item := range items {
		if notified[item.OrderID] {
			continue
		}
		notified[item.OrderID] = true

		var order models.Order
		if err := s.db.First(&order, item.OrderID).Error; err != nil {
			log.Printf("Failed to load order %d for reminder: %v", item.OrderID, err)
			continue
		}
		NotifyOrderEvent(s.db, &order, models.EventVisitReminder)
	}

	log.Printf("Visit reminder processing completed, %d orders notified", len(notified))
}
