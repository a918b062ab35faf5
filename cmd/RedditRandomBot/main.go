package main

import (
	"context"
	"time"

	"RedditRandomBot/internal/bot"
	"RedditRandomBot/internal/logging"
	"RedditRandomBot/internal/telemetry"
	"RedditRandomBot/pkg/apperr"
	"RedditRandomBot/pkg/common"
	"RedditRandomBot/pkg/reddit"
	"RedditRandomBot/pkg/reddit/services"

	"github.com/alexflint/go-arg"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Arguments are read from the flags or the environment variables. A .env file is loaded first if it exists.
type Arguments struct {
	BotToken           string        `arg:"--bot-token,env:BOT_TOKEN,required" help:"telegram bot token"`
	UserAgent          string        `arg:"--user-agent,env:REDDIT_USER_AGENT" help:"user agent of the requests to reddit"`
	GfycatClientID     string        `arg:"--gfycat-client-id,env:GFYCAT_CLIENT_ID" help:"gfycat is handled as a generic link if empty"`
	GfycatClientSecret string        `arg:"--gfycat-client-secret,env:GFYCAT_CLIENT_SECRET"`
	ImgurClientID      string        `arg:"--imgur-client-id,env:IMGUR_CLIENT_ID"`
	AllowedUsers       []int64       `arg:"--allowed-users,env:ALLOWED_USERS" help:"comma separated telegram user ids; everyone is allowed if empty"`
	Environment        string        `arg:"--environment,env:ENVIRONMENT" default:"production" help:"development or production"`
	OtlpEndpoint       string        `arg:"--otlp-endpoint,env:OTEL_EXPORTER_OTLP_ENDPOINT" help:"tracing is disabled if empty"`
	HTTPTimeout        time.Duration `arg:"--http-timeout,env:HTTP_TIMEOUT" default:"10s"`
	Verbose            bool          `arg:"-v,--verbose" help:"log debug messages"`
}

func (Arguments) Description() string {
	return "Reddit Random Bot v" + common.Version + ": sends random reddit posts to telegram"
}

func main() {
	errors.DisableTrace()
	// The .env file is optional
	_ = godotenv.Load()
	var args Arguments
	arg.MustParse(&args)
	logging.Setup(args.Environment, args.Verbose)
	log.Info().Str("version", common.Version).Msg("starting reddit random bot")

	if err := run(context.Background(), args); err != nil {
		log.Fatal().Err(err).Msg("error running the bot")
	}
}

func run(ctx context.Context, args Arguments) error {
	tracerProvider, shutdown, err := telemetry.Init(ctx, args.OtlpEndpoint, args.Environment)
	if err != nil {
		return errors.Wrap(err, "cannot initialize tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("cannot shutdown tracing")
		}
	}()
	if args.HTTPTimeout > 0 {
		common.GlobalHttpClient.Timeout = args.HTTPTimeout
	}
	s, err := services.NewServices(ctx, services.Config{
		HTTPClient:         &common.GlobalHttpClient,
		GfycatClientID:     args.GfycatClientID,
		GfycatClientSecret: args.GfycatClientSecret,
		ImgurClientID:      args.ImgurClientID,
	})
	if err != nil {
		return errors.Wrap(err, "cannot initialize the services")
	}
	if args.ImgurClientID == "" {
		log.Warn().Msg("IMGUR_CLIENT_ID is not set; imgur requests will be rejected")
	}
	client := &bot.Client{
		Reddit:     reddit.NewClient(s, reddit.WithUserAgent(args.UserAgent)),
		Reporter:   apperr.NewReporter(log.Logger, apperr.WithTracerProvider(tracerProvider)),
		HTTPClient: &common.GlobalHttpClient,
		UserAgent:  userAgent(args.UserAgent),
	}
	return client.RunBot(args.BotToken, args.AllowedUsers)
}

func userAgent(configured string) string {
	if configured == "" {
		return common.DefaultUserAgent
	}
	return configured
}
