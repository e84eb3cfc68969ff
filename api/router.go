package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"api_dealership/internal/analytics"
	"api_dealership/internal/auth"
	"api_dealership/internal/clients"
	"api_dealership/internal/config"
	"api_dealership/internal/db"
	"api_dealership/internal/inventory"
	"api_dealership/internal/sales"
)

// InitRoutes wires the production dependencies (logger, store, credential
// roster) and registers all endpoints on the given Gin engine.
func InitRoutes(e *gin.Engine) error {
	logger, _ := zap.NewProduction()

	gdb, err := db.Open(logger)
	if err != nil {
		return err
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	roster := auth.Defaults()
	if path := config.GetEnv("AUTH_USERS_FILE", ""); path != "" {
		roster, err = auth.Load(path)
		if err != nil {
			return err
		}
	}
	verifier, err := auth.NewStaticVerifier(roster)
	if err != nil {
		return err
	}

	InitRoutesWithDeps(e, gdb, verifier, logger)
	return nil
}

// InitRoutesWithDeps registers all endpoints against explicit dependencies.
// Tests use it to supply an in-memory store and a fixed roster.
func InitRoutesWithDeps(e *gin.Engine, gdb *gorm.DB, verifier auth.Verifier, logger *zap.Logger) {
	registerValidators()

	e.Use(RequestID())
	e.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	salesService := sales.NewService(gdb, logger)
	inventoryService := inventory.NewService(gdb, logger)
	clientsService := clients.NewService(gdb, logger)
	analyticsService := analytics.NewService(salesService, logger)

	vehiclesHandler := newVehiclesHandler(inventoryService, logger)
	clientsHandler := newClientsHandler(clientsService, logger)
	salesHandler := newSalesHandler(salesService, logger)
	analyticsHandler := newAnalyticsHandler(analyticsService)
	systemHandler := newSystemHandler(gdb)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authed := e.Group("/api", RequireAuth(verifier, logger))
	manager := RequireManager()

	vehicles := authed.Group("/vehicles")
	vehicles.GET("", vehiclesHandler.handleList)
	vehicles.GET("/:id", vehiclesHandler.handleGet)
	vehicles.POST("", manager, vehiclesHandler.handleCreate)
	vehicles.PUT("/:id", manager, vehiclesHandler.handleUpdate)
	vehicles.DELETE("/:id", manager, vehiclesHandler.handleDelete)

	clientRoutes := authed.Group("/clients")
	clientRoutes.GET("", clientsHandler.handleList)
	clientRoutes.GET("/:id", clientsHandler.handleGet)
	clientRoutes.POST("", manager, clientsHandler.handleCreate)
	clientRoutes.PUT("/:id", manager, clientsHandler.handleUpdate)
	clientRoutes.DELETE("/:id", manager, clientsHandler.handleDelete)

	// Any authenticated role may record a sale; only managers may rewrite
	// history.
	saleRoutes := authed.Group("/sales")
	saleRoutes.GET("", salesHandler.handleList)
	saleRoutes.GET("/:id", salesHandler.handleGet)
	saleRoutes.POST("", salesHandler.handleRecord)
	saleRoutes.PUT("/:id", manager, salesHandler.handleUpdate)
	saleRoutes.DELETE("/:id", manager, salesHandler.handleDelete)

	analyticsRoutes := authed.Group("/analytics")
	analyticsRoutes.GET("/quarterly", analyticsHandler.handleQuarterly)
	analyticsRoutes.GET("/insights", analyticsHandler.handleInsights)

	authed.GET("/system/health", systemHandler.handleHealth)
}

// vinPattern matches a 17-character VIN; I, O and Q are never used in VINs.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

var validatorsOnce sync.Once

func registerValidators() {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("vin", func(fl validator.FieldLevel) bool {
				return vinPattern.MatchString(strings.ToUpper(fl.Field().String()))
			})
		}
	})
}
