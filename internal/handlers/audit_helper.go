package handlers

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/models"
)

func writeAudit(
	db *gorm.DB,
	salonID uint,
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {

	var payload string
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			payload = string(b)
		}
	}

	entry := models.AuditLog{
		SalonID:  salonID,
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: payload,
	}

	db.Create(&entry)
}
