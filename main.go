package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"api_dealership/api"
	"api_dealership/internal/config"
)

func main() {
	r := gin.Default()
	if err := api.InitRoutes(r); err != nil {
		panic(fmt.Errorf("error initializing server: %v", err))
	}

	port := config.GetEnv("PORT", "8080")
	if err := r.Run(":" + port); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
