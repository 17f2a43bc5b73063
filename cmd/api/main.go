package main

import (
	"os"

	"github.com/yigit/sportfit/internal/pkg/logger"
	"github.com/yigit/sportfit/internal/server"
)

// @title SportFit API
// @version 1.0
// @description Fitness class marketplace: instructors publish classes, admins review them, students pay and enroll.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
