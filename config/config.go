package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"KidScreen/models"

	firebase "firebase.google.com/go/v4"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB
var FirebaseApp *firebase.App

func InitDatabase() {
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")

	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		if strings.Contains(host, "render.com") {
			sslmode = "require"
		} else {
			sslmode = "disable"
		}
	}

	log.Printf("Connecting to database: host=%s user=%s dbname=%s port=%s sslmode=%s",
		host, user, dbname, port, sslmode)

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Successfully connected to database!")

	DB.AutoMigrate(&models.Family{}, &models.Guardian{}, &models.Child{}, &models.Session{})
}

// InitFirebase поднимает Firebase App для push-уведомлений.
// Без учетных данных приложение работает, push просто выключен.
func InitFirebase() {
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, push notifications disabled")
		return
	}

	opt := option.WithCredentialsFile(credPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v\n", err)
	}
	FirebaseApp = app
}

// FamilyLocation - часовой пояс семьи из FAMILY_TIMEZONE
// (IANA-имя; по умолчанию локальная зона сервера).
func FamilyLocation() *time.Location {
	name := os.Getenv("FAMILY_TIMEZONE")
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("bad FAMILY_TIMEZONE %q, falling back to local: %v", name, err)
		return time.Local
	}
	return loc
}

// GuardianPasscodeHash - bcrypt-хэш общего кода опекуна.
// Пустой GUARDIAN_PASSCODE отключает повышение прав ребенком.
func GuardianPasscodeHash() []byte {
	passcode := os.Getenv("GUARDIAN_PASSCODE")
	if passcode == "" {
		log.Println("GUARDIAN_PASSCODE not set, child passcode challenge disabled")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash guardian passcode: %v", err)
	}
	return hash
}
