package main

import (
	"context"
	"fmt"
	"os"
	"sleepclinic-service/cmd/migration"
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/app/drivers/database"
	"sleepclinic-service/internal/app/drivers/logger"
	"sleepclinic-service/internal/app/models"
	"sleepclinic-service/internal/app/services/core/auth"
	"sleepclinic-service/internal/app/services/core/authorization"
	"sleepclinic-service/internal/app/services/core/patients"
	"sleepclinic-service/internal/app/services/core/sessions"
	"sleepclinic-service/internal/app/services/core/users"
	"sleepclinic-service/internal/pkg/constvars"
	"sleepclinic-service/internal/pkg/dto/requests"
	"sleepclinic-service/internal/pkg/exceptions"
	"sleepclinic-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Version and Tag are set at build time with -ldflags.
var (
	Version = "develop"
	Tag     = "0.0.1-rc"
)

const commandTimeout = 30 * time.Second

func main() {
	logger.NewLogrusLogger(config.NewDriverConfig(), config.NewInternalConfig())

	rootCmd := &cobra.Command{
		Use:   "sleepclinic-admin",
		Short: "Operator commands for the sleep clinic service",
	}

	rootCmd.AddCommand(createMainHeadCmd())
	rootCmd.AddCommand(purgeSessionsCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(permissionsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createMainHeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-main-head",
		Short: "Register a MainHead account that owns a new doctor network",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			request := &requests.RegisterMainHead{Name: name, Email: email, Password: password}
			utils.SanitizeRegisterMainHeadRequest(request)
			err := utils.ValidateStruct(request)
			if err != nil {
				return fmt.Errorf("invalid input: %s", exceptions.FormatFirstValidationError(err))
			}

			internalConfig := config.NewInternalConfig()
			return withMongo(func(ctx context.Context, db *mongo.Database) error {
				userRepository := users.NewUserMongoRepository(db)
				sessionRepository := sessions.NewSessionMongoRepository(db)
				authUsecase := auth.NewAuthUsecase(userRepository, sessionRepository, nil, nil, internalConfig, newCommandLogger(internalConfig))

				mainHead, err := authUsecase.RegisterMainHead(ctx, request)
				if err != nil {
					return err
				}
				fmt.Printf("MainHead created: id=%s email=%s\n", mainHead.ID, mainHead.Email)
				return nil
			})
		},
	}
	cmd.Flags().String("name", "", "Display name of the MainHead")
	cmd.Flags().String("email", "", "Login email of the MainHead")
	cmd.Flags().String("password", "", "Initial password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func purgeSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete sessions whose expiry has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(func(ctx context.Context, db *mongo.Database) error {
				sessionRepository := sessions.NewSessionMongoRepository(db)
				deleted, err := sessionRepository.DeleteExpiredSessions(ctx, time.Now())
				if err != nil {
					return err
				}
				fmt.Printf("Purged %d expired sessions\n", deleted)
				return nil
			})
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create MongoDB indexes for every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(func(ctx context.Context, db *mongo.Database) error {
				return migration.Run(ctx, map[string]migration.IndexOwner{
					constvars.MongoCollectionUsers:    users.NewUserMongoRepository(db),
					constvars.MongoCollectionPatients: patients.NewPatientMongoRepository(db),
					constvars.MongoCollectionSessions: sessions.NewSessionMongoRepository(db),
				})
			})
		},
	}
}

func permissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "permissions",
		Short: "List the role level permissions of every role",
		RunE: func(cmd *cobra.Command, args []string) error {
			rolePolicy, err := authorization.NewRolePolicy()
			if err != nil {
				return err
			}
			for _, role := range []models.Role{models.RoleMainHead, models.RoleDoctor} {
				fmt.Printf("%s: %s\n", role, strings.Join(rolePolicy.Permissions(role), ", "))
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Version: %s\n", Version)
			fmt.Printf("Tag: %s\n", Tag)
		},
	}
}

func withMongo(run func(ctx context.Context, db *mongo.Database) error) error {
	driverConfig := config.NewDriverConfig()
	db := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	defer func() {
		err := db.Client().Disconnect(context.Background())
		if err != nil {
			logrus.Warnf("Error disconnecting MongoDB: %v", err)
		}
	}()

	return run(ctx, db)
}

func newCommandLogger(internalConfig *config.InternalConfig) *zap.Logger {
	if internalConfig.App.Env == "production" {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
