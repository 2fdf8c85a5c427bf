package params

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type API struct {
	Addr string
	// CORSOrigins restricts browsers to the local frontend by default.
	CORSOrigins []string
}

type Storage struct {
	DataDir string
	// JournalDisabled turns off the pebble trade journal entirely.
	JournalDisabled bool
}

type Config struct {
	API     API
	Storage Storage
	LogFile string
}

func Default() Config {
	return Config{
		API: API{
			Addr: ":8080",
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:8080",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:8080",
			},
		},
		Storage: Storage{DataDir: "data"},
		LogFile: "data/oms.log",
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if addr := os.Getenv("API_ADDR"); addr != "" {
		cfg.API.Addr = addr
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.API.CORSOrigins = strings.Split(origins, ",")
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.Storage.DataDir = dir
	}
	if v := os.Getenv("JOURNAL_DISABLED"); v != "" {
		cfg.Storage.JournalDisabled = v == "true"
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}

	return cfg
}
