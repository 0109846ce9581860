package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_SofaScoreDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SofaScoreBaseURL != "https://api.sofascore.com/api/v1" {
		t.Fatalf("unexpected SofaScoreBaseURL: %q", cfg.SofaScoreBaseURL)
	}
	if cfg.SofaScoreTimeout != 20*time.Second {
		t.Fatalf("unexpected SofaScoreTimeout: %s", cfg.SofaScoreTimeout)
	}
	if cfg.SofaScoreMaxRetries != 1 {
		t.Fatalf("unexpected SofaScoreMaxRetries: %d", cfg.SofaScoreMaxRetries)
	}
	if !cfg.SofaScoreCircuitEnabled {
		t.Fatalf("expected circuit enabled by default")
	}
}

func TestLoad_IngestDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.IngestMaxConcurrentBranches != 8 {
		t.Fatalf("unexpected IngestMaxConcurrentBranches: %d", cfg.IngestMaxConcurrentBranches)
	}
	if cfg.IngestRequestPacing != 0 {
		t.Fatalf("unexpected IngestRequestPacing: %s", cfg.IngestRequestPacing)
	}
	if cfg.IngestBranchMaxRetries != 3 {
		t.Fatalf("unexpected IngestBranchMaxRetries: %d", cfg.IngestBranchMaxRetries)
	}
	if cfg.IngestRetryBaseDelay != 200*time.Millisecond {
		t.Fatalf("unexpected IngestRetryBaseDelay: %s", cfg.IngestRetryBaseDelay)
	}
}

func TestLoad_IngestValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("zero branches rejected", func(t *testing.T) {
		t.Setenv("INGEST_MAX_CONCURRENT_BRANCHES", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for INGEST_MAX_CONCURRENT_BRANCHES=0")
		}
	})

	t.Run("max delay below base rejected", func(t *testing.T) {
		t.Setenv("INGEST_RETRY_BASE_DELAY", "1s")
		t.Setenv("INGEST_RETRY_MAX_DELAY", "100ms")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when INGEST_RETRY_MAX_DELAY < INGEST_RETRY_BASE_DELAY")
		}
	})
}

func TestLoad_IngestTournamentIDsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("comma separated", func(t *testing.T) {
		t.Setenv("INGEST_TOURNAMENT_IDS", " 7, 17 ,23 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.IngestTournamentIDs) != 3 {
			t.Fatalf("unexpected id count: %d", len(cfg.IngestTournamentIDs))
		}
		if cfg.IngestTournamentIDs[0] != 7 || cfg.IngestTournamentIDs[2] != 23 {
			t.Fatalf("unexpected ids: %v", cfg.IngestTournamentIDs)
		}
	})

	t.Run("invalid id rejected", func(t *testing.T) {
		t.Setenv("INGEST_TOURNAMENT_IDS", "7,abc")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for non-numeric tournament id")
		}
	})

	t.Run("non-positive id rejected", func(t *testing.T) {
		t.Setenv("INGEST_TOURNAMENT_IDS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero tournament id")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
	})
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel.String())
	}
}
