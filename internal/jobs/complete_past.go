package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/timezone"
)

// completionGrace keeps just-finished appointments out of the sweep so an
// owner can still cancel a no-show manually right after the end time.
const completionGrace = 2 * time.Hour

// CompletePastAppointments marks booked appointments whose window ended
// more than the grace period ago as completed. Runs from cron.
func CompletePastAppointments(db *gorm.DB) {
	now := timezone.Now()
	cutoff := now.Add(-completionGrace)

	res := db.Exec(`
        UPDATE appointments
        SET status = 'completed', completed_at = ?, updated_at = ?
        WHERE status = 'booked' AND end_time < ?
    `, now, now, cutoff)

	if res.Error != nil {
		log.Printf("complete-past sweep failed: %v", res.Error)
		return
	}

	if res.RowsAffected > 0 {
		log.Printf("complete-past sweep: %d appointment(s) completed", res.RowsAffected)
	}
}
