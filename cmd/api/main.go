package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/fleetworks/transport-backend/internal/database"
	"github.com/fleetworks/transport-backend/internal/handlers"
	"github.com/fleetworks/transport-backend/internal/logger"
	"github.com/fleetworks/transport-backend/internal/middleware"
	"github.com/fleetworks/transport-backend/internal/services"
)

func main() {
	var (
		port    = flag.String("port", "", "listen port (overrides PORT)")
		envFile = flag.String("env-file", ".env", "path to the env file")
		seed    = flag.Bool("seed", false, "load the demo dataset and exit if it fails")
	)
	flag.Parse()

	logger.Setup()

	if err := godotenv.Load(*envFile); err != nil {
		logrus.Infof("no env file loaded (%v), relying on environment", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		logrus.Fatal("JWT_SECRET is not set; refusing to sign tokens with an empty key")
	}

	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if *seed {
		if err := database.Seed(db); err != nil {
			logrus.Fatalf("seeding failed: %v", err)
		}
		logrus.Info("demo dataset loaded")
	}

	// Redis backs token revocation; the service runs without it.
	if err := services.InitRedis(); err != nil {
		logrus.Warnf("redis unavailable, logout revocation disabled: %v", err)
	}

	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login(db))
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.Logout())
		}

		// Entity-change event feed for list views.
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/me", handlers.GetProfile(db))
				users.GET("", handlers.GetUsers(db))
				users.POST("", handlers.CreateUser(db, hub))
				users.PUT("/:id", handlers.UpdateUser(db, hub))
				users.DELETE("/:id", handlers.DeleteUser(db, hub))
			}

			drivers := protected.Group("/drivers")
			{
				drivers.GET("", handlers.GetDrivers(db))
				drivers.POST("", handlers.CreateDriver(db, hub))
				drivers.PUT("/:id", handlers.UpdateDriver(db, hub))
				drivers.DELETE("/:id", handlers.DeleteDriver(db, hub))
			}

			vehicles := protected.Group("/vehicles")
			{
				vehicles.GET("", handlers.GetVehicles(db))
				vehicles.POST("", handlers.CreateVehicle(db, hub))
				vehicles.PUT("/:id", handlers.UpdateVehicle(db, hub))
				vehicles.DELETE("/:id", handlers.DeleteVehicle(db, hub))
			}

			shipments := protected.Group("/shipments")
			{
				shipments.GET("", handlers.GetShipments(db))
				shipments.POST("", handlers.CreateShipment(db, hub))
				shipments.PUT("/:id", handlers.UpdateShipment(db, hub))
				shipments.DELETE("/:id", handlers.DeleteShipment(db, hub))
			}

			trips := protected.Group("/trips")
			{
				trips.GET("", handlers.GetTrips(db))
				trips.POST("", handlers.CreateTrip(db, hub))
				trips.PUT("/:id", handlers.UpdateTrip(db, hub))
				trips.DELETE("/:id", handlers.DeleteTrip(db, hub))
				trips.PATCH("/:id/status", handlers.UpdateTripStatus(db, hub))
			}
		}
	}

	listen := *port
	if listen == "" {
		listen = os.Getenv("PORT")
	}
	if listen == "" {
		listen = "8080"
	}

	logrus.Infof("server listening on :%s", listen)
	if err := r.Run(":" + listen); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
