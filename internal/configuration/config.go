package configuration

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	BaseURL string `json:"baseUrl"`
}

type SocketConfig struct {
	URL string `json:"url"`
}

type IdentityConfig struct {
	ClerkID     string `json:"clerkId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type Config struct {
	API      APIConfig      `json:"api"`
	Socket   SocketConfig   `json:"socket"`
	Identity IdentityConfig `json:"identity"`
}

// LoadConfig reads the JSON config file (optional) and applies environment
// overrides on top. A .env file next to the binary is honored.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		API:    APIConfig{BaseURL: "http://localhost:8080"},
		Socket: SocketConfig{URL: "ws://localhost:8080/ws"},
	}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(file, config); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("BUZZLINK_API_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("BUZZLINK_WS_URL"); v != "" {
		config.Socket.URL = v
	}
	if v := os.Getenv("BUZZLINK_CLERK_ID"); v != "" {
		config.Identity.ClerkID = v
	}
	if v := os.Getenv("BUZZLINK_DISPLAY_NAME"); v != "" {
		config.Identity.DisplayName = v
	}
	if v := os.Getenv("BUZZLINK_EMAIL"); v != "" {
		config.Identity.Email = v
	}

	return config, nil
}
