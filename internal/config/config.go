// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		Terms         []string `yaml:"search_terms" json:"search_terms"`
		Sites         []string `yaml:"sites" json:"sites"`
		ResultsWanted int      `yaml:"results_wanted" json:"results_wanted"`
		HoursOld      int      `yaml:"hours_old" json:"hours_old"`
		Country       string   `yaml:"country" json:"country"`
		Location      string   `yaml:"location" json:"location"`
	} `yaml:"search" json:"search"`

	Filters struct {
		JobTitles           GroupList `yaml:"job_titles" json:"job_titles"`
		DescriptionKeywords GroupList `yaml:"description_keywords" json:"description_keywords"`
	} `yaml:"filters" json:"filters"`

	Scraper struct {
		ServiceURL     string  `yaml:"service_url" json:"service_url"`
		MaxWorkers     int     `yaml:"max_workers" json:"max_workers"`
		WorkerReserve  int     `yaml:"worker_reserve" json:"worker_reserve"`
		RequestsPerSec float64 `yaml:"requests_per_sec" json:"requests_per_sec"`
		Burst          int     `yaml:"burst" json:"burst"`
	} `yaml:"scraper" json:"scraper"`
}

const (
	DefaultResultsWanted = 20
	DefaultHoursOld      = 24
	DefaultCountry       = "USA"
	DefaultWorkerReserve = 2
)

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

func ApplyDefaults(cfg *Config) {
	if cfg.Search.ResultsWanted <= 0 {
		cfg.Search.ResultsWanted = DefaultResultsWanted
	}
	if cfg.Search.HoursOld <= 0 {
		cfg.Search.HoursOld = DefaultHoursOld
	}
	if cfg.Search.Country == "" {
		cfg.Search.Country = DefaultCountry
	}
	if cfg.Scraper.WorkerReserve <= 0 {
		cfg.Scraper.WorkerReserve = DefaultWorkerReserve
	}
	if cfg.Scraper.RequestsPerSec <= 0 {
		cfg.Scraper.RequestsPerSec = 1.0
	}
	if cfg.Scraper.Burst <= 0 {
		cfg.Scraper.Burst = 2
	}
}
