package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/blogart/internal/config"
	"github.com/snappy-loop/blogart/internal/illustrator"
	"github.com/snappy-loop/blogart/internal/kafka"
	"github.com/snappy-loop/blogart/internal/llm"
	"github.com/snappy-loop/blogart/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	topic := flag.String("topic", "Finnish Greetings", "blog post topic (header image)")
	customPrompt := flag.String("prompt", "", "custom header image description; replaces the topic-based one")
	word := flag.String("word", "", "Finnish word; generates a vocabulary card instead of a header")
	translation := flag.String("translation", "", "English translation of -word")
	description := flag.String("describe", "", "freeform image description; requires -stem")
	stem := flag.String("stem", "", "output filename stem for -describe, without extension")
	style := flag.String("style", "", "art style for -describe")
	date := flag.String("date", time.Now().Format("2006-01-02"), "post date used in the filename")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	llmClient, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelImage, cfg.GeminiAPIEndpoint)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Gemini client")
		return 2
	}

	opts := illustrator.Options{Timeout: cfg.ImageRequestTimeout}
	if cfg.S3Enabled() {
		storageClient, err := storage.NewClient(ctx, storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			log.Warn().Err(err).Msg("S3 not available; artwork stays local only")
		} else {
			opts.Mirror = storageClient
		}
	}
	if cfg.KafkaEnabled() {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicArtwork)
		defer producer.Close()
		opts.Publisher = producer
	}

	local := storage.NewLocal(cfg.ImagesDir)
	log.Info().
		Str("images_dir", local.Dir()).
		Str("model_image", llmClient.Model()).
		Bool("s3_mirror", opts.Mirror != nil).
		Bool("kafka_events", opts.Publisher != nil).
		Msg("Illustrator ready")

	il := illustrator.New(llmClient, local, opts)

	var res illustrator.Result
	switch {
	case *word != "":
		res = il.GenerateVocabularyCard(ctx, *word, *translation, *date)
	case *description != "":
		if *stem == "" {
			log.Error().Msg("-describe requires -stem")
			return 2
		}
		res = il.GenerateImage(ctx, *description, *stem, *style)
	default:
		res = il.GenerateBlogHeader(ctx, *topic, *date, *customPrompt)
	}

	if !res.OK() {
		log.Error().Err(res.Err).Msg("Image generation failed")
		return 1
	}
	log.Info().Str("path", res.Path).Str("url", res.Artwork.URL).Msg("Success! Image saved")
	return 0
}
