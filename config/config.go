package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings is the full environment surface of the service.
type Settings struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"`
	DBURL    string `env:"DB_URL,required,notEmpty"`

	JWTSecret  string `env:"JWT_SECRET,required,notEmpty"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	GoogleMapsKey string `env:"GOOGLE_MAPS_KEY"`

	GoogleClientID         string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret     string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL      string `env:"GOOGLE_REDIRECT_URL"`
	GoogleFrontendRedirect string `env:"GOOGLE_FRONTEND_REDIRECT"`

	UploadDir    string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	MediaURL     string `env:"MEDIA_URL" envDefault:"/media/"`
	IntroBaseURL string `env:"INTRO_BASE_URL" envDefault:"/intro-hongding/"`
}

var (
	PORT       string
	DB_DRIVER  string
	DB_URL     string
	JWT_SECRET string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	// Current holds everything parsed by LoadEnv.
	Current Settings
)

// Load parses the process environment without touching package state.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	switch s.DBDriver {
	case "postgres", "sqlite":
	default:
		return Settings{}, fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}
	return s, nil
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	s, err := Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	Set(s)
}

// Set installs s as the active configuration.
func Set(s Settings) {
	Current = s

	PORT = s.Port
	DB_DRIVER = s.DBDriver
	DB_URL = s.DBURL
	JWT_SECRET = s.JWTSecret

	GOOGLE_CLIENT_ID = s.GoogleClientID
	GOOGLE_CLIENT_SECRET = s.GoogleClientSecret
	GOOGLE_REDIRECT_URL = s.GoogleRedirectURL
	GOOGLE_FRONTEND_REDIRECT = s.GoogleFrontendRedirect
}

// GoogleSignInEnabled reports whether admin Google sign-in is configured.
func GoogleSignInEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
}
