package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sbayrealty/brokerage-backend/availability"
	"github.com/sbayrealty/brokerage-backend/controllers"
	"github.com/sbayrealty/brokerage-backend/cron"
	"github.com/sbayrealty/brokerage-backend/db"
	"github.com/sbayrealty/brokerage-backend/gcal"
	"github.com/sbayrealty/brokerage-backend/metrics"
	"github.com/sbayrealty/brokerage-backend/redis"
	"github.com/sbayrealty/brokerage-backend/routes"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		db.Migrate()
		return
	}

	app := fiber.New()
	db.Init()

	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
		controllers.InitLeadDedupe(redis.Client)
	}

	metrics.Register()

	settings := controllers.CalendarSettingsFromEnv()
	store := availability.NewGormStore(db.GetDB())
	resolver := availability.NewResolver(store, store, store, availability.Options{
		CheckBlockedDates: settings.CheckBlockedDates,
	})
	controllers.InitCalendar(resolver, settings)

	if calendarSync, err := gcal.NewServiceFromEnv(context.Background()); err != nil {
		log.Printf("Google Calendar sync disabled: %v", err)
	} else {
		controllers.InitCalendarSync(calendarSync)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Brokerage backend up")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.SetupAuthRoutes(app)
	routes.SetupCalendarRoutes(app)
	routes.SetupLeadRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupPropertyRoutes(app)
	routes.SetupAdminRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal(err)
	}
}
