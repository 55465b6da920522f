package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "./todos.db", cfg.Database.SQLitePath)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowCredentials)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_WRITE_TIMEOUT", "30s")
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Log.Pretty)
}

func TestMalformedValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("SERVER_IDLE_TIMEOUT", "forever")
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "perhaps")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, int32(5), cfg.Database.MaxConns)
	assert.True(t, cfg.CORS.AllowCredentials)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Driver: DriverMemory},
			Auth:     AuthConfig{BcryptCost: bcrypt.DefaultCost},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "memory driver", mutate: func(c *Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "unknown DB_DRIVER",
		},
		{
			name:    "postgres without password",
			mutate:  func(c *Config) { c.Database.Driver = DriverPostgres },
			wantErr: "DB_PASSWORD is required",
		},
		{
			name: "postgres with password",
			mutate: func(c *Config) {
				c.Database.Driver = DriverPostgres
				c.Database.Password = "secret"
			},
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Database.Driver = DriverSQLite },
			wantErr: "DB_SQLITE_PATH is required",
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(c *Config) { c.Auth.BcryptCost = 1 },
			wantErr: "BCRYPT_COST",
		},
		{
			name:    "bcrypt cost too high",
			mutate:  func(c *Config) { c.Auth.BcryptCost = bcrypt.MaxCost + 1 },
			wantErr: "BCRYPT_COST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		User:        "todo",
		Password:    "pw",
		Host:        "db",
		Port:        "5433",
		Name:        "todos",
		SSLMode:     "require",
		ConnTimeout: 7 * time.Second,
	}}
	assert.Equal(t, "postgres://todo:pw@db:5433/todos?connect_timeout=7&sslmode=require", cfg.GetDSN())
}

func TestGetDSNEscapesCredentials(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		User:        "todo@app",
		Password:    "p@ss:w/rd?#",
		Host:        "db",
		Port:        "5432",
		Name:        "todos",
		SSLMode:     "disable",
		ConnTimeout: 10 * time.Second,
	}}

	parsed, err := url.Parse(cfg.GetDSN())
	require.NoError(t, err)
	assert.Equal(t, "todo@app", parsed.User.Username())
	password, ok := parsed.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss:w/rd?#", password)
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/todos", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))

	_, err = pgxpool.ParseConfig(cfg.GetDSN())
	require.NoError(t, err)
}
