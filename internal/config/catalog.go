package config

import "time"

type Catalog struct {
	SheetCSVURL  string        `env:"SHEET_CSV_URL"`
	SyncCron     string        `env:"CATALOG_SYNC_CRON" envDefault:"@every 15m"`
	SyncInterval time.Duration `env:"CATALOG_SYNC_INTERVAL" envDefault:"15m"`
	CacheTTL     time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"1m"`
	FetchTimeout time.Duration `env:"CATALOG_FETCH_TIMEOUT" envDefault:"20s"`
}
