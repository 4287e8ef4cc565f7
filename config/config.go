package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	DatabasePath    string `json:"databasePath"`
	ListenAddr      string `json:"listenAddr"`
	FiscalYear      int    `json:"fiscalYear"`
	SearchLimit     int    `json:"searchLimit"`
	ImportChunkSize int    `json:"importChunkSize"`
	SeedFolderPath  string `json:"seedFolderPath"`
	BrowserPath     string `json:"browserPath"`
	OpenBrowser     bool   `json:"openBrowser"`
}

var (
	cfg = withDefaults(Config{})
	mu  sync.RWMutex
)

// FilePath is where the config is read from and saved to.
var FilePath = "./rkpd_config.json"

func withDefaults(c Config) Config {
	if c.DatabasePath == "" {
		c.DatabasePath = "./rkpd.db"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.FiscalYear == 0 {
		c.FiscalYear = 2027
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 50
	}
	if c.ImportChunkSize <= 0 {
		c.ImportChunkSize = 100
	}
	if c.SeedFolderPath == "" {
		c.SeedFolderPath = "SEED"
	}
	return c
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = withDefaults(Config{})
			return cfg, nil
		}
		return withDefaults(Config{}), err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return withDefaults(Config{}), err
	}
	cfg = withDefaults(tempCfg)
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = withDefaults(newCfg)
	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(FilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
