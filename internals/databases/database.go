package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/configs"
	appModel "monrepetiteur_backend/internals/features/marketplace/application/model"
	contractModel "monrepetiteur_backend/internals/features/marketplace/contract/model"
	offerModel "monrepetiteur_backend/internals/features/marketplace/offer/model"
	notificationModel "monrepetiteur_backend/internals/features/notifications/model"
	authModel "monrepetiteur_backend/internals/features/users/auth/model"
	profileModel "monrepetiteur_backend/internals/features/users/profile/model"
	userModel "monrepetiteur_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	// Full DSN + statement_timeout. With PgBouncer point host/port at the
	// pooler and keep PreferSimpleProtocol=true.
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=monrepetiteur&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
		// Unique violations must come back as gorm.ErrDuplicatedKey so the
		// duplicate-application race resolves to a 409, not a 500.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

// Migrate creates/updates the schema. Opt-in through AUTO_MIGRATE;
// production runs SQL migrations out of band.
func Migrate() {
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&profileModel.TutorProfileModel{},
		&profileModel.TutorDocumentModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&offerModel.OfferModel{},
		&appModel.ApplicationModel{},
		&contractModel.ContractModel{},
		&notificationModel.NotificationModel{},
	)
	if err != nil {
		log.Fatalf("❌ auto-migrate failed: %v", err)
	}
	log.Println("✅ Schema migrated.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
