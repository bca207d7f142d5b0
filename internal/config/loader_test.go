package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/moviefront/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://localhost:5000")
				convey.So(cfg.MockDelayMS, convey.ShouldEqual, 1500)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MOVIEFRONT_ADDR", ":8080")
			_ = os.Setenv("MOVIEFRONT_API_BASE_URL", "http://engine:5000")
			_ = os.Setenv("MOVIEFRONT_MOCK_DELAY_MS", "10")
			_ = os.Setenv("MOVIEFRONT_SESSION_CAPACITY", "42")
			_ = os.Setenv("MOVIEFRONT_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://engine:5000")
				convey.So(cfg.MockDelayMS, convey.ShouldEqual, 10)
				convey.So(cfg.SessionCapacity, convey.ShouldEqual, 42)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
api_base_url: "http://recs.internal:5000"
n_recommendations: 8
suggestion_limit: 3
cors_allowed_origins:
  - "https://movies.example"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOVIEFRONT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://recs.internal:5000")
				convey.So(cfg.NRecommendations, convey.ShouldEqual, 8)
				convey.So(cfg.SuggestionLimit, convey.ShouldEqual, 3)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://movies.example"})
				convey.So(cfg.MockDelayMS, convey.ShouldEqual, 1500)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
mock_delay_ms: 200
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOVIEFRONT_CONFIG", tmpFile)
			_ = os.Setenv("MOVIEFRONT_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MockDelayMS, convey.ShouldEqual, 200)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOVIEFRONT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MOVIEFRONT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MOVIEFRONT_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MOVIEFRONT_MOCK_DELAY_MS", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given configs that break invariants", t, func() {
		cases := map[string]func(c *config.Config){
			"api_base_url must not be empty":       func(c *config.Config) { c.APIBaseURL = "" },
			"not an absolute URL":                  func(c *config.Config) { c.APIBaseURL = "localhost" },
			"n_recommendations must be positive":   func(c *config.Config) { c.NRecommendations = 0 },
			"upstream_timeout_ms must be positive": func(c *config.Config) { c.UpstreamTimeoutMS = -1 },
			"mock_delay_ms must not be negative":   func(c *config.Config) { c.MockDelayMS = -5 },
			"session_capacity must be positive":    func(c *config.Config) { c.SessionCapacity = 0 },
		}
		for want, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, want)
		}
	})

	convey.Convey("Given a zero mock delay", t, func() {
		cfg := config.New()
		cfg.MockDelayMS = 0
		convey.So(cfg.Validate(), convey.ShouldBeNil)
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, envVar := range []string{
		"MOVIEFRONT_CONFIG",
		"MOVIEFRONT_ADDR",
		"MOVIEFRONT_API_BASE_URL",
		"MOVIEFRONT_MOCK_DELAY_MS",
		"MOVIEFRONT_SESSION_CAPACITY",
		"MOVIEFRONT_CORS_ALLOWED_ORIGINS",
	} {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "moviefront-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
