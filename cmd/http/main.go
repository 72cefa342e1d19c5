package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sleepclinic-service/cmd/migration"
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/app/delivery/http/controllers"
	"sleepclinic-service/internal/app/delivery/http/middlewares"
	"sleepclinic-service/internal/app/delivery/http/routers"
	"sleepclinic-service/internal/app/drivers/database"
	"sleepclinic-service/internal/app/drivers/logger"
	"sleepclinic-service/internal/app/drivers/messaging"
	"sleepclinic-service/internal/app/drivers/storage"
	"sleepclinic-service/internal/app/services/core/auth"
	"sleepclinic-service/internal/app/services/core/authorization"
	"sleepclinic-service/internal/app/services/core/consents"
	"sleepclinic-service/internal/app/services/core/doctors"
	"sleepclinic-service/internal/app/services/core/identity"
	"sleepclinic-service/internal/app/services/core/patients"
	"sleepclinic-service/internal/app/services/core/reports"
	"sleepclinic-service/internal/app/services/core/sessions"
	"sleepclinic-service/internal/app/services/core/users"
	"sleepclinic-service/internal/app/services/shared/auditlog"
	"sleepclinic-service/internal/app/services/shared/locker"
	"sleepclinic-service/internal/app/services/shared/ratelimiter"
	"sleepclinic-service/internal/app/services/shared/redis"
	minioStorage "sleepclinic-service/internal/app/services/shared/storage"
	"sleepclinic-service/internal/pkg/constvars"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		Logger:         logger.NewZapLogger(driverConfig, internalConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig.Minio.BucketName),
		InternalConfig: internalConfig,
	}

	sweeper, err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Printf("Server listening on port %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	sweeper.Stop()

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Errorf("Error closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) (*sessions.Sweeper, error) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Rate limiter
	attemptLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)

	// Storage
	consentStorage := minioStorage.NewMinioStorage(bootstrap.Minio)

	// Audit
	auditPublisher, err := auditlog.NewRabbitMQPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.RabbitMQ.AuditQueue)
	if err != nil {
		return nil, err
	}
	auditRecorder := auditlog.NewRecorder(auditPublisher, bootstrap.Logger)

	// Repositories
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB)
	patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB)
	sessionMongoRepository := sessions.NewSessionMongoRepository(bootstrap.MongoDB)
	sessionRepository := sessions.NewCachedSessionRepository(
		sessionMongoRepository,
		redisRepository,
		bootstrap.Logger,
		time.Duration(bootstrap.InternalConfig.App.SessionCacheTTLInMinutes)*time.Minute,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = migration.Run(ctx, map[string]migration.IndexOwner{
		constvars.MongoCollectionUsers:    userMongoRepository,
		constvars.MongoCollectionPatients: patientMongoRepository,
		constvars.MongoCollectionSessions: sessionMongoRepository,
	})
	if err != nil {
		return nil, err
	}

	// Identity & authorization
	identityResolver := identity.NewIdentityResolver(sessionRepository, userMongoRepository, bootstrap.Logger)
	authorizationEngine := authorization.NewAuthorizationEngine(userMongoRepository)
	rolePolicy, err := authorization.NewRolePolicy()
	if err != nil {
		return nil, err
	}

	// Usecases
	authUsecase := auth.NewAuthUsecase(userMongoRepository, sessionRepository, attemptLimiter, auditRecorder, bootstrap.InternalConfig, bootstrap.Logger)
	patientUsecase := patients.NewPatientUsecase(patientMongoRepository, authorizationEngine, rolePolicy, auditRecorder, bootstrap.Logger)
	doctorUsecase := doctors.NewDoctorUsecase(userMongoRepository, patientMongoRepository, sessionRepository, authorizationEngine, rolePolicy, auditRecorder, bootstrap.Logger)
	reportUsecase := reports.NewReportUsecase(patientUsecase, rolePolicy, bootstrap.Logger)
	consentUsecase := consents.NewConsentUsecase(patientMongoRepository, authorizationEngine, consentStorage, auditRecorder, bootstrap.InternalConfig, bootstrap.Logger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, identityResolver, bootstrap.InternalConfig)

	// Controllers
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)
	patientController := controllers.NewPatientController(bootstrap.Logger, patientUsecase, consentUsecase)
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase, patientUsecase)
	reportController := controllers.NewReportController(bootstrap.Logger, reportUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		authController,
		patientController,
		doctorController,
		reportController,
	)

	// Workers
	sweeper := sessions.NewSweeper(
		sessionRepository,
		locker.NewLockService(redisRepository, bootstrap.Logger),
		bootstrap.Logger,
		bootstrap.InternalConfig.App.SessionSweeperCronSpec,
	)
	sweeper.Start(context.Background())

	return sweeper, nil
}
