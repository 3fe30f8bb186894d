package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	gcs "cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/eliteair/pass-signing-service/internal/config"
	"github.com/eliteair/pass-signing-service/internal/documents"
	"github.com/eliteair/pass-signing-service/internal/logger"
	"github.com/eliteair/pass-signing-service/internal/secrets"
	"github.com/eliteair/pass-signing-service/internal/server"
	"github.com/eliteair/pass-signing-service/internal/storage"
	"github.com/eliteair/pass-signing-service/internal/version"
	"github.com/eliteair/pass-signing-service/internal/wallet"
)

//	@title			pass-server
//	@description	pass-server signs Apple Wallet boarding passes and issues short-lived download URLs for the default aircraft documents
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	Individual endpoints document their specific business logic errors.
//	@description
//	@description	## Request Limits
//	@description	All endpoints are protected by:
//	@description	- **Rate limiting**: Configurable requests per second (see env vars) - set to 0 to disable
//	@description	- **Request size limits**: Configurable (see env vars) - default 1MB
//	@description
//	@description	Check the X-Max-Request-Size response header for the configured limit.
//	@description
//	@description	## Authentication & Authorization
//	@description
//	@description	The service itself holds no credentials for clients. /default-doc is gated by a
//	@description	shared access code held in Secret Manager; /sign is unauthenticated and returns
//	@description	no secrets (the pass is signed server-side, the signing material never leaves the service).
//	@description
//	@license.name	MIT

//	@servers.url			https://passes.example.com
//	@servers.description	Production server
//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			Passes
//	@tag.description	Boarding pass signing endpoints

//	@tag.name			Documents
//	@tag.description	Default aircraft document download endpoints

//	@tag.name			Common
//	@tag.description	Server API endpoints (health, version, etc.)

func main() {
	cmd := &cobra.Command{
		Use:   "pass-server",
		Short: "Apple Wallet boarding pass signing server",
		Long:  `pass-server issues signed .pkpass boarding pass bundles and short-lived download URLs for the default aircraft documents`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("GCP_PROJECT", cfg.GCPProject),
		slog.String("DEFAULT_DOCS_BUCKET", cfg.DefaultDocsBucket),
		slog.String("PASS_TYPE_ID", cfg.PassTypeID),
		slog.String("TEAM_ID", cfg.TeamID),
	)

	// The service starts with incomplete configuration so that /health stays
	// useful during provisioning. Affected endpoints fail per-request instead.
	for _, name := range cfg.MissingRequired() {
		appLogger.Error("missing required environment variable", slog.String("var", name))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userAgent := fmt.Sprintf("pass-server/%s", version.Get().Version)

	secretsClient, err := secretmanager.NewClient(ctx, option.WithUserAgent(userAgent))
	if err != nil {
		appLogger.Error("Failed to create Secret Manager client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer secretsClient.Close()

	storageClient, err := gcs.NewClient(ctx, option.WithUserAgent(userAgent))
	if err != nil {
		appLogger.Error("Failed to create Cloud Storage client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storageClient.Close()

	provider := secrets.NewSecretManagerProvider(secretsClient, cfg.GCPProject)
	store := storage.NewGCSStore(storageClient, cfg.DefaultDocsBucket)

	gate := documents.NewGate(provider, store, documents.Config{
		AccessCodeSecret: cfg.DefaultDocsCodeSecret,
		Objects: map[documents.Kind]string{
			documents.KindPOH:   cfg.POHObject(),
			documents.KindG3000: cfg.G3000Object(),
		},
		URLTTL: config.SignedURLTTL,
	})

	issuer := wallet.NewIssuer(provider, wallet.IssuerConfig{
		PassTypeID:                cfg.PassTypeID,
		TeamID:                    cfg.TeamID,
		OrganizationName:          cfg.OrgName,
		SignerCertSecret:          cfg.SignerCertSecret,
		SignerKeySecret:           cfg.SignerKeySecret,
		SignerKeyPassphraseSecret: cfg.SignerKeyPassphraseSecret,
		WWDRCertSecret:            cfg.WWDRCertSecret,
	})

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	srv := server.NewServer(cfg, appLogger, gate, issuer)

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
