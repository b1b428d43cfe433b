package config

const (
	DefaultTimeZone = "Europe/Vienna"

	// Import pipeline limits
	ImportMaxUploadBytes = 32 << 20
	ImportMaxRows        = 10000

	// Plan Rollover Constants
	DefaultRolloverSchedule = "0 5 1 * *" // 05:00 on the 1st of every month
	RolloverBatchSize       = 500
)
