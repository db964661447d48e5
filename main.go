package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/estateops/backend/internal/config"
	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title			EstateOps Backend
// @description	The backend for EstateOps, a multi-tenant property management solution.
// @securityDefinitions.apikey	BearerAuth
// @in				header
// @name			Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.Server.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.Server.LogFormat == "" && gin.IsDebugging()) || cfg.Server.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create the data directory
	err = os.MkdirAll(filepath.Dir(cfg.DB.Path), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate the schema
	err = models.Connect(cfg.DB.Path)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Router(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
