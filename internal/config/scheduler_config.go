package config

// SchedulerConfig defines the automatic update schedule.
type SchedulerConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty" validate:"required"`
}

// NewDefaultSchedulerConfig creates default scheduler configuration.
// The weekend windows track match days: Saturday afternoons and Sundays
// carry most fixtures, weekdays only need a daily check.
func NewDefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:  true,
		Timezone: "Europe/Madrid",
	}
}
