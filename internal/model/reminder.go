package model

// ReminderConfig is the persisted daily reminder preference. CronExpression is
// what gets scheduled; Time is kept for display.
type ReminderConfig struct {
	Time           string `json:"time"`
	CronExpression string `json:"cronExpression"`
}

// DefaultReminderConfig is used when the stored settings cannot be read.
func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		Time:           "8:00 PM",
		CronExpression: "0 0 20 * * *",
	}
}
