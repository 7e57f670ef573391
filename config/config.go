package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ReschedulePolicy decides the status a rescheduled appointment lands
// in: re-entering the active lifecycle as "scheduled" (default) or
// keeping the permanent "rescheduled" tag.
type ReschedulePolicy string

const (
	RescheduleToScheduled ReschedulePolicy = "scheduled"
	RescheduleKeepsTag    ReschedulePolicy = "rescheduled"
)

type SchedulingConfig struct {
	// SlotDurationMinutes is the fixed slot size. Values below 60 are
	// raised to 60.
	SlotDurationMinutes int

	// CancellationDeadline feeds the can_be_cancelled advisory flag.
	CancellationDeadline time.Duration

	// EnforceCancellationDeadline upgrades the advisory flag to a hard
	// precondition on the cancel transition.
	EnforceCancellationDeadline bool

	ReschedulePolicy ReschedulePolicy
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	slotMinutes := viper.GetInt("APPOINTMENT_SLOT_DURATION_MINUTES")
	if slotMinutes < 60 {
		slotMinutes = 60
	}

	deadlineHours := viper.GetInt("CANCELLATION_DEADLINE_HOURS")
	if deadlineHours <= 0 {
		deadlineHours = 24
	}

	reschedulePolicy := ReschedulePolicy(viper.GetString("RESCHEDULE_STATUS_POLICY"))
	if reschedulePolicy != RescheduleKeepsTag {
		reschedulePolicy = RescheduleToScheduled
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Scheduling: SchedulingConfig{
			SlotDurationMinutes:         slotMinutes,
			CancellationDeadline:        time.Duration(deadlineHours) * time.Hour,
			EnforceCancellationDeadline: viper.GetBool("ENFORCE_CANCELLATION_DEADLINE"),
			ReschedulePolicy:            reschedulePolicy,
		},
	}

	return config, nil
}
