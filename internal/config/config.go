package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr    = ":8080"
	defaultMigrationsDir = "migrations"
	defaultChannelID     = "LedgerApp"
	defaultChannelKey    = "LedgerKey001"
)

// Config wires the server. DatabaseDSN and SnapshotDir are optional: empty
// means the corresponding persistence sink stays disabled.
type Config struct {
	ListenAddr    string `yaml:"listenAddr"`
	DatabaseDSN   string `yaml:"databaseDsn"`
	MigrationsDir string `yaml:"migrationsDir"`
	SnapshotDir   string `yaml:"snapshotDir"`
	ChannelID     string `yaml:"channelId"`
	ChannelKey    string `yaml:"channelKey"`
	BcryptCost    int    `yaml:"bcryptCost"`
}

// Load builds the config from defaults, then an optional YAML file named
// by CONFIG_FILE, then environment variables. Later sources win.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:    defaultListenAddr,
		MigrationsDir: defaultMigrationsDir,
		ChannelID:     defaultChannelID,
		ChannelKey:    defaultChannelKey,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	overlayString(&cfg.ListenAddr, "LISTEN_ADDR")
	overlayString(&cfg.DatabaseDSN, "DATABASE_DSN")
	overlayString(&cfg.MigrationsDir, "MIGRATIONS_DIR")
	overlayString(&cfg.SnapshotDir, "SNAPSHOT_DIR")
	overlayString(&cfg.ChannelID, "CHANNEL_ID")
	overlayString(&cfg.ChannelKey, "CHANNEL_KEY")

	if raw := strings.TrimSpace(os.Getenv("BCRYPT_COST")); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}

	cfg.DatabaseDSN = normalizeConnectionString(cfg.DatabaseDSN)
	return cfg, nil
}

func overlayString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// normalizeConnectionString accepts either a libpq keyword string or a
// semicolon-separated "Host=...;Port=...;Database=..." string and returns
// libpq form.
func normalizeConnectionString(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
