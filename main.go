package main

import (
	"log"

	"team-scheduler-api/core/server"
)

// @title Team Scheduler API
// @version 1.0
// @description Multi-participant meeting availability and booking service.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := server.Run(); err != nil {
		log.Fatal(err)
	}
}
