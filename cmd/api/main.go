package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/salonbook/salon-scheduler/internal/cache"
	"github.com/salonbook/salon-scheduler/internal/config"
	dbpkg "github.com/salonbook/salon-scheduler/internal/db"
	"github.com/salonbook/salon-scheduler/internal/jobs"
	"github.com/salonbook/salon-scheduler/internal/routes"
	"github.com/salonbook/salon-scheduler/internal/validators"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	availCache := cache.New(cfg.RedisURL)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("hhmm", validators.HHMM)
	}

	c := cron.New()
	c.AddFunc("*/30 * * * *", func() { jobs.CompletePastAppointments(db) })
	c.Start()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, availCache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
