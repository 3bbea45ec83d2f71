package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"settlement/cmd"
	httpadapter "settlement/internal/adapters/in/http"
	"settlement/internal/adapters/out/postgres/carrierrepo"
	"settlement/internal/adapters/out/postgres/ledgerrepo"
	"settlement/internal/adapters/out/postgres/paymentrepo"
	"settlement/internal/adapters/out/postgres/sessionrepo"
	"settlement/internal/adapters/out/postgres/settlementrepo"
	"settlement/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", configs.RedisHost, configs.RedisPort),
	})

	root, err := cmd.NewCompositionRoot(configs, gormDB, redisClient)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(root.UnitOfWorkFactory(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		RedisHost:          goDotEnvVariable("REDIS_HOST"),
		RedisPort:          goDotEnvVariable("REDIS_PORT"),
		DefaultShippingFee: goDotEnvVariable("DEFAULT_SHIPPING_FEE"),
		DraftTTLHours:      goDotEnvVariable("DRAFT_TTL_HOURS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the settlement repository relies on to
	// detect code collisions.
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&carrierrepo.CarrierDTO{},
		&carrierrepo.ZoneDTO{},
		&sessionrepo.SessionDTO{},
		&sessionrepo.SessionOrderDTO{},
		&ledgerrepo.MovementDTO{},
		&settlementrepo.SettlementDTO{},
		&paymentrepo.PaymentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateDispatchSessionCommandHandler(),
		root.CreateMarkDispatchedCommandHandler(),
		root.CreateAbandonSessionCommandHandler(),
		root.CreateReconcileSessionCommandHandler(),
		root.CreateRegisterPaymentCommandHandler(),
		root.CreateAcknowledgeSettlementCommandHandler(),
		root.CreateCreateAdjustmentCommandHandler(),
		root.CreateCreateZoneCommandHandler(),
		root.CreateUpdateZoneCommandHandler(),
		root.CreateDeleteZoneCommandHandler(),
		root.CreateGetPendingReconciliationQueryHandler(),
		root.CreateGetOrdersForReconciliationQueryHandler(),
		root.CreateCalculateFeeQueryHandler(),
		root.CreateGetBalancesQueryHandler(),
		root.CreateGetMovementsQueryHandler(),
		root.DraftStore(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
