// Package config загружает конфигурацию бота и CLI из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"serotonyl.ru/habit-tracker/internal/features/streak"
)

// StreakConfig — настройки расчёта серий. Общие для бота и habitctl.
type StreakConfig struct {
	// Минимальный интервал между отметками соседних периодов (23:50 и 00:10 — одна отметка)
	StreakMinGap time.Duration `envconfig:"STREAK_MIN_GAP" default:"4h"`
	// Сортировать отметки перед расчётом. По умолчанию порядок гарантирует хранилище.
	StreakSortCheckoffs bool `envconfig:"STREAK_SORT_CHECKOFFS" default:"false"`
	// Формат отметок в хранилище
	StreakTimeLayout string `envconfig:"STREAK_TIME_LAYOUT" default:"2006-01-02 15:04:05"`
}

// Config содержит ВСЕ настройки бота.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	AdminIDsRaw      string  `envconfig:"ADMIN_IDS" required:"true"`
	AdminIDs         []int64 `envconfig:"-"` // заполним вручную
	// Групповые чаты, где бот отвечает. Личка обслуживается всегда.
	AllowedChatIDsRaw string  `envconfig:"ALLOWED_CHAT_IDS"`
	AllowedChatIDs    []int64 `envconfig:"-"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"habituser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"habits"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно. Иначе "go на каждый апдейт" = утечка памяти при флуде.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Admin ---
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	// --- Streak ---
	StreakConfig

	// --- Jobs ---
	JobsReminderSpec      string `envconfig:"JOBS_REMINDER_SPEC" default:"0 20 * * *"`
	JobsDigestSpec        string `envconfig:"JOBS_DIGEST_SPEC" default:"0 10 * * 1"`
	JobsReminderMinStreak int    `envconfig:"JOBS_REMINDER_MIN_STREAK" default:"3"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureRemindersEnabled bool `envconfig:"FEATURE_REMINDERS_ENABLED" default:"true"`
	FeatureDigestEnabled    bool `envconfig:"FEATURE_DIGEST_ENABLED" default:"true"`
}

// CLIConfig — то, что нужно habitctl: без токена, пароля БД и админки.
type CLIConfig struct {
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"warn"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	StreakConfig

	// Путь к SQLite-файлу. Пустой — ~/.habitctl/habits.db
	DBPath string `envconfig:"HABITCTL_DB_PATH"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// IsAdmin проверяет, есть ли userID в ADMIN_IDS.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.JobsReminderMinStreak < 0 {
		return fmt.Errorf("JOBS_REMINDER_MIN_STREAK не может быть отрицательным")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS и RATE_LIMIT_WINDOW должны быть > 0")
	}
	if _, err := time.LoadLocation(c.AppTimezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE %q: %w", c.AppTimezone, err)
	}
	return c.StreakConfig.Validate()
}

// Validate проверяет настройки серий.
func (s StreakConfig) Validate() error {
	if s.StreakMinGap < 0 {
		return fmt.Errorf("STREAK_MIN_GAP не может быть отрицательным")
	}
	if strings.TrimSpace(s.StreakTimeLayout) == "" {
		return fmt.Errorf("STREAK_TIME_LAYOUT не задан")
	}
	return nil
}

// Options собирает настройки движка серий для часового пояса loc.
func (s StreakConfig) Options(loc *time.Location) streak.Options {
	return streak.Options{
		MinGap:        s.StreakMinGap,
		Layout:        s.StreakTimeLayout,
		Location:      loc,
		SortCheckoffs: s.StreakSortCheckoffs,
	}
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	chats, err := parseInt64CSV(cfg.AllowedChatIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ALLOWED_CHAT_IDS parse: %w", err)
	}
	cfg.AllowedChatIDs = chats

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadCLI читает настройки для habitctl. Обязательных переменных нет.
func LoadCLI() (*CLIConfig, error) {
	var cfg CLIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if _, err := time.LoadLocation(cfg.AppTimezone); err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE %q: %w", cfg.AppTimezone, err)
	}
	if err := cfg.StreakConfig.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
