package db

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

type migrationProbe struct {
	ID   uint
	Name string
}

// TestBuildDSN_Postgres はTCP接続用のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN_Postgres(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   DriverPostgres,
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "require",
	}

	dsn := BuildDSN(cfg)

	expected := "host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=require TimeZone=UTC"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_CloudSQLTakesPrecedence はInstanceNameとHostが両方設定されている場合にInstanceNameが優先されることを検証します。
func TestBuildDSN_CloudSQLTakesPrecedence(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:       DriverPostgres,
		User:         "testuser",
		Password:     "testpass",
		Name:         "testdb",
		Host:         "localhost",
		Port:         "5432",
		InstanceName: "project:region:instance",
	}

	dsn := BuildDSN(cfg)

	expected := "host=/cloudsql/project:region:instance user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_SQLite はsqliteの場合ファイルパスがそのまま使われることを検証します。
func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	dsn := BuildDSN(Config{Driver: DriverSQLite, Path: "/tmp/av.db", Host: "ignored"})

	if dsn != "/tmp/av.db" {
		t.Errorf("expected sqlite path, got %q", dsn)
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attemptCount != 1 {
		t.Errorf("expected 1 attempt, got %d", attemptCount)
	}
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel because this test takes time due to retry sleeps

	mockDB := &gorm.DB{}
	attemptCount := 0

	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		if attemptCount < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	// retry interval is 3 seconds
	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attemptCount != 3 {
		t.Errorf("expected 3 attempts, got %d", attemptCount)
	}
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	refused := errors.New("connection refused")
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return nil, refused
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	if !errors.Is(err, refused) {
		t.Fatalf("expected wrapped connection error, got %v", err)
	}
	if attemptCount != 1 {
		t.Errorf("expected a single attempt, got %d", attemptCount)
	}
}

// TestOpenerFor_Unsupported は未対応ドライバでエラーになることを検証します。
func TestOpenerFor_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := OpenerFor("mysql")

	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}

// TestOpen_SQLiteMemoryMigrates はsqliteのインメモリDBに接続しマイグレーションできることを検証します。
func TestOpen_SQLiteMemoryMigrates(t *testing.T) {
	t.Parallel()

	db, err := Open(Config{Driver: DriverSQLite, Path: ":memory:", RunMigrations: true}, &migrationProbe{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.Migrator().HasTable(&migrationProbe{}) {
		t.Error("expected migrated table")
	}
}

// TestLoadConfigFromEnv は環境変数からデータベース設定が正しく読み込まれることを検証します。
func TestLoadConfigFromEnv(t *testing.T) {
	// Note: Not running in parallel since we're modifying environment variables
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("DB_NAME", "envdb")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("INSTANCE_CONNECTION_NAME", "")
	t.Setenv("RUN_MIGRATIONS", "true")

	cfg := LoadConfigFromEnv()

	if cfg.Driver != DriverPostgres {
		t.Errorf("expected Driver 'postgres', got %q", cfg.Driver)
	}
	if cfg.User != "envuser" || cfg.Password != "envpass" || cfg.Name != "envdb" || cfg.Host != "envhost" {
		t.Errorf("unexpected credentials: %+v", cfg)
	}
	if cfg.Port != "5432" {
		t.Errorf("expected default Port '5432', got %q", cfg.Port)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("expected default SSLMode 'disable', got %q", cfg.SSLMode)
	}
	if !cfg.RunMigrations {
		t.Error("expected RunMigrations")
	}
}

// TestLoadConfigFromEnv_DefaultsToSQLite はDB_DRIVER未設定時にsqliteになることを検証します。
func TestLoadConfigFromEnv_DefaultsToSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", "")

	cfg := LoadConfigFromEnv()

	if cfg.Driver != DriverSQLite || cfg.Path != "alpha_vantage.db" {
		t.Errorf("unexpected sqlite defaults: %+v", cfg)
	}
}
