package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonbook/salon-scheduler/internal/httperr"
)

type bookingErrorResponse struct {
	status  int
	message string
}

// Every business code the booking use cases can surface, with the
// HTTP status and the client-facing message it maps to. Unknown codes
// fall through to a 500 so new codes never leak a 200.
var bookingErrors = map[string]bookingErrorResponse{
	"invalid_date_or_time":   {http.StatusBadRequest, "Nieprawidłowa data lub godzina."},
	"too_soon":               {http.StatusUnprocessableEntity, "Wybrany termin jest zbyt blisko. Wybierz późniejszą godzinę."},
	"service_not_found":      {http.StatusNotFound, "Usługa nie została znaleziona."},
	"addon_not_found":        {http.StatusNotFound, "Wybrany dodatek nie został znaleziony."},
	"employee_not_available": {http.StatusUnprocessableEntity, "Wybrany pracownik nie wykonuje tej usługi."},
	"outside_working_hours":  {http.StatusUnprocessableEntity, "Wybrana godzina jest poza godzinami pracy."},
	"employee_unavailable":   {http.StatusUnprocessableEntity, "Pracownik jest niedostępny w tym dniu."},
	"salon_closed":           {http.StatusUnprocessableEntity, "Salon jest zamknięty w tym dniu."},
	"slot_taken":             {http.StatusConflict, "Ten termin został właśnie zajęty."},
	"appointment_not_found":  {http.StatusNotFound, "Wizyta nie została znaleziona."},
	"invalid_state":          {http.StatusUnprocessableEntity, "Ta wizyta nie jest już aktywna."},
}

// writeBookingError translates a use case error into the HTTP response.
func writeBookingError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		if resp, known := bookingErrors[code]; known {
			httperr.Write(c, resp.status, code, resp.message)
			return
		}
	}
	httperr.Internal(c, "internal_error", "Wystąpił nieoczekiwany błąd. Spróbuj ponownie.")
}
