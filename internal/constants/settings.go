package constants

const (
	SettingActiveProject      = "active_project"
	SettingDefaultPreset      = "default_preset"
	SettingDefaultGranularity = "default_granularity"
	SettingInsightModel       = "insight_model"

	// Default Settings Values
	DefaultPreset      = "Last 14 days"
	DefaultGranularity = "day"
)

// Environment variables
const (
	EnvConfig       = "ALOG_CONFIG"
	EnvDebug        = "ALOG_DEBUG"
	EnvDBConnection = "ALOG_DB_CONNECTION"
	EnvAPIKey       = "ALOG_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)
