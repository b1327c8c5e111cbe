package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBPath  string
	Workers int

	// Ingest
	ScrapeInterval time.Duration
	MinScore       int
	AdzunaAppID    string
	AdzunaAppKey   string

	// Cover letters
	OpenAIKey string

	// Email transport
	MailServer   string
	MailUsername string
	MailPassword string
	MailFrom     string
	CVPath       string

	// Notifications
	TelegramToken  string
	TelegramChatID int64

	// Candidate profile used in cover letters and application emails.
	Profile Profile
}

type Profile struct {
	Name           string
	Email          string
	Phone          string
	GitHub         string
	LinkedIn       string
	Education      string
	KeyProject     string
	Skills         []string
	Certifications []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	from := getEnv("MAIL_FROM", "")
	if from == "" {
		from = os.Getenv("MAIL_USERNAME")
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "jobhunter.db"),
		Workers:        getEnvInt("WORKERS", 5),
		ScrapeInterval: getEnvDuration("SCRAPE_INTERVAL", 6*time.Hour),
		MinScore:       getEnvInt("MIN_RELEVANCE_SCORE", 15),
		AdzunaAppID:    os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:   os.Getenv("ADZUNA_APP_KEY"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		MailServer:     getEnv("MAIL_SERVER", "smtp.gmail.com"),
		MailUsername:   os.Getenv("MAIL_USERNAME"),
		MailPassword:   os.Getenv("MAIL_PASSWORD"),
		MailFrom:       from,
		CVPath:         getEnv("CV_PATH", "uploads/cv.pdf"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),
		Profile: Profile{
			Name:           getEnv("CANDIDATE_NAME", "Candidate"),
			Email:          os.Getenv("CANDIDATE_EMAIL"),
			Phone:          os.Getenv("CANDIDATE_PHONE"),
			GitHub:         os.Getenv("CANDIDATE_GITHUB"),
			LinkedIn:       os.Getenv("CANDIDATE_LINKEDIN"),
			Education:      os.Getenv("CANDIDATE_EDUCATION"),
			KeyProject:     os.Getenv("CANDIDATE_KEY_PROJECT"),
			Skills:         getEnvList("CANDIDATE_SKILLS"),
			Certifications: getEnvList("CANDIDATE_CERTIFICATIONS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// getEnvList parses a comma-separated value, trimming whitespace and
// dropping empty entries.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
