// Package main serves the prompt gallery API behind API Gateway (HTTP API,
// payload v2). Services are assembled once per cold start.
package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog/log"

	"github.com/fpang/prompt-gallery/internal/api"
	"github.com/fpang/prompt-gallery/internal/boot"
	"github.com/fpang/prompt-gallery/internal/config"
	"github.com/fpang/prompt-gallery/internal/logging"
)

var adapter *httpadapter.HandlerAdapterV2

func init() {
	if os.Getenv("GALLERY_LOG_FORMAT") == "" {
		os.Setenv("GALLERY_LOG_FORMAT", "json")
	}
	logging.Init()

	initStart := time.Now()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	app, err := boot.New(context.Background(), "gallery-lambda", cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	adapter = httpadapter.NewV2(api.FromApp(app).Handler())
	log.Debug().Dur("init", time.Since(initStart)).Msg("Lambda initialized")
}

func main() {
	lambda.Start(adapter.ProxyWithContext)
}
