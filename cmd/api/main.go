package main

import (
	"context"
	"net/http"
	"time"

	"georoute-api/internal/config"
	"georoute-api/internal/directions"
	"georoute-api/internal/handler"
	"georoute-api/internal/repository"
	"georoute-api/internal/scraper"
	"georoute-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	// The resolution cache is optional: without a configured database the
	// service scrapes on every request.
	var cache service.ResolutionCache
	if cfg.DBSource != "" {
		conn, err := pgxpool.New(context.Background(), cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()
		cache = repository.NewRepository(conn)
	} else {
		log.Info().Msg("no db_source configured, running without resolution cache")
	}

	// Initialize layers
	resolver := scraper.New(cfg.ScraperBaseURL, time.Duration(cfg.ScraperTimeoutSeconds)*time.Second)
	directionsClient := directions.New(cfg.DirectionsBaseURL, cfg.DirectionsProfile, 0)

	geoCodeService := service.NewGeoCodeService(resolver, cache)
	routeService := service.NewRouteService(directionsClient, cfg.SimplifyTolerance)

	geoCodeHandler := handler.NewGeoCodeHandler(geoCodeService)
	routeHandler := handler.NewRouteHandler(routeService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/geocode", geoCodeHandler.GeoCode)
	r.GET("/route", routeHandler.Route)
	r.POST("/route/simplify", routeHandler.Simplify)

	r.Run(cfg.ServerAddress)
}
