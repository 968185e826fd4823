package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Błąd podczas pobierania listy klientów.")
		return
	}

	c.JSON(http.StatusOK, clients)
}
