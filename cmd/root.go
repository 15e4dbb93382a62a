package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	globalConfig "github.com/postdeck/config"
	coreconfig "github.com/postdeck/core/config"
	domainAnalytics "github.com/postdeck/domains/analytics"
	domainAssistant "github.com/postdeck/domains/assistant"
	domainHealth "github.com/postdeck/domains/health"
	domainPost "github.com/postdeck/domains/post"
	domainSelection "github.com/postdeck/domains/selection"
	"github.com/postdeck/engine"
	"github.com/postdeck/infrastructure/schedapi"
	"github.com/postdeck/infrastructure/snapshot"
	"github.com/postdeck/integrations/gemini"
	"github.com/postdeck/integrations/openai"
	"github.com/postdeck/pkg/taskworker"
	"github.com/postdeck/pkg/utils"
	uiRest "github.com/postdeck/ui/rest"
	"github.com/postdeck/ui/websocket"
	"github.com/postdeck/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Engine
	store         *engine.Store
	syncLoop      *engine.SyncLoop
	selectionCtrl *engine.SelectionController
	snapshotCache *snapshot.Cache
	submitPool    *taskworker.Pool

	appCtx    context.Context
	appCancel context.CancelFunc

	// Usecase
	postUsecase      domainPost.IPostUsecase
	assistantUsecase domainAssistant.IAssistantUsecase
	analyticsUsecase domainAnalytics.IAnalyticsUsecase
	selectionUsecase domainSelection.ISelectionUsecase
	healthUsecase    domainHealth.IHealthUsecase
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Short: "Local companion daemon for the social post scheduler",
	Long: `PostDeck keeps a client-side mirror of the remote scheduling backend:
posts appear instantly on submission, a background loop reconciles the mirror
against the backend, and the AI helpers fall back to deterministic local
answers when no API key is configured.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig layers environment variables over the flat defaults.
func initEnvConfig() {
	if envPort := viper.GetString("app_port"); envPort != "" {
		globalConfig.AppPort = envPort
	}
	if envDebug := viper.GetBool("app_debug"); envDebug {
		globalConfig.AppDebug = envDebug
	}
	envBasicAuth := viper.GetString("app_basic_auth")
	if envBasicAuth == "" {
		envBasicAuth = os.Getenv("APP_BASIC_AUTH")
	}
	if envBasicAuth != "" {
		globalConfig.AppBasicAuthCredential = strings.Split(envBasicAuth, ",")
	}
	if envBasePath := viper.GetString("app_base_path"); envBasePath != "" {
		globalConfig.AppBasePath = envBasePath
	}
	if envTrustedProxies := viper.GetString("app_trusted_proxies"); envTrustedProxies != "" {
		globalConfig.AppTrustedProxies = strings.Split(envTrustedProxies, ",")
	}
	if envBackend := viper.GetString("backend_base_url"); envBackend != "" {
		globalConfig.BackendBaseURL = strings.TrimRight(envBackend, "/")
	}
	if viper.IsSet("sync_interval_seconds") {
		if n := viper.GetInt("sync_interval_seconds"); n > 0 {
			globalConfig.SyncIntervalSeconds = n
		}
	}
	if envProvider := viper.GetString("ai_provider"); envProvider != "" {
		globalConfig.AIProvider = strings.ToLower(envProvider)
	}
	if envModel := viper.GetString("ai_model"); envModel != "" {
		globalConfig.AIModel = envModel
	}
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppPort,
		"port", "p",
		globalConfig.AppPort,
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&globalConfig.AppDebug,
		"debug", "d",
		globalConfig.AppDebug,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringSliceVarP(
		&globalConfig.AppBasicAuthCredential,
		"basic-auth", "b",
		globalConfig.AppBasicAuthCredential,
		"basic auth credential | -b=yourUsername:yourPassword",
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppBasePath,
		"base-path", "",
		globalConfig.AppBasePath,
		`base path for subpath deployment --base-path <string> | example: --base-path="/postdeck"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.BackendBaseURL,
		"backend-url", "",
		globalConfig.BackendBaseURL,
		`scheduling backend base url --backend-url <string> | example: --backend-url="http://localhost:8000"`,
	)
	rootCmd.PersistentFlags().IntVarP(
		&globalConfig.SyncIntervalSeconds,
		"sync-interval", "",
		globalConfig.SyncIntervalSeconds,
		`seconds between snapshot pulls --sync-interval <number> | example: --sync-interval=10`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AIProvider,
		"ai-provider", "",
		globalConfig.AIProvider,
		`ai provider for the assistant features --ai-provider <gemini|openai>`,
	)
}

func initApp() {
	if globalConfig.AppDebug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := coreconfig.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if err := utils.CreateFolder(cfg.Paths.Statics, cfg.Paths.Posts, cfg.Paths.Storages); err != nil {
		logrus.Errorln(err)
	}

	appCtx, appCancel = context.WithCancel(context.Background())

	// Snapshot cache: pre-hydrate the store so the calendar renders before
	// the first pull lands.
	snapshotCache, err = snapshot.Open(cfg.Paths.Snapshot)
	if err != nil {
		logrus.WithError(err).Warn("[APP] Snapshot cache unavailable, starting cold")
		snapshotCache = nil
	}

	store = engine.NewStore()
	selectionCtrl = engine.NewSelectionController(store)

	if snapshotCache != nil {
		if cached, err := snapshotCache.Load(appCtx); err != nil {
			logrus.WithError(err).Warn("[APP] Failed to load cached snapshot")
		} else if len(cached) > 0 {
			store.Reconcile(cached)
			logrus.Infof("[APP] Pre-hydrated store with %d cached posts", len(cached))
		}
	}

	gateway := schedapi.NewGateway(cfg.Backend.BaseURL)
	events := snapshot.NewSink(snapshotCache, store, websocket.HubSink{})

	syncLoop = engine.NewSyncLoop(gateway, store, time.Duration(cfg.Sync.IntervalSeconds)*time.Second, events)

	submitPool = taskworker.NewPool(4, 64)
	submitPool.Start(appCtx)
	uiRest.SetSubmitPool(submitPool)

	var provider domainAssistant.Provider
	switch cfg.AI.Provider {
	case "openai":
		provider = openai.NewProvider(cfg.AI.Model)
	default:
		provider = gemini.NewProvider(cfg.AI.Model)
	}

	postUsecase = usecase.NewPostService(store, gateway, syncLoop, submitPool, events, cfg.Paths.Posts, cfg.AI.MaxImageBytes, cfg.AI.ThumbWidth)
	assistantUsecase = usecase.NewAssistantService(provider)
	analyticsUsecase = usecase.NewAnalyticsService(gateway, assistantUsecase)
	selectionUsecase = usecase.NewSelectionService(store, selectionCtrl)
	healthUsecase = usecase.NewHealthService(gateway, store)

	syncLoop.Start(appCtx)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of the background loops and the snapshot
// cache.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if appCancel != nil {
		appCancel()
	}
	if submitPool != nil {
		submitPool.Stop()
	}
	if snapshotCache != nil {
		if err := snapshotCache.Close(); err != nil {
			logrus.WithError(err).Warn("[APP] Failed to close snapshot cache")
		}
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
