package models

import "github.com/julianstephens/alog/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	ActiveProjectID    string `json:"active_project"`      // project the daily view and stats operate on
	DefaultPreset      string `json:"default_preset"`      // preset label used when no range is given, e.g. "Last 14 days"
	DefaultGranularity string `json:"default_granularity"` // "day", "week" or "month"
	InsightModel       string `json:"insight_model"`       // text-generation model name
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) Settings {
	settings := Settings{}
	for key, value := range data {
		switch key {
		case constants.SettingActiveProject:
			settings.ActiveProjectID = value
		case constants.SettingDefaultPreset:
			settings.DefaultPreset = value
		case constants.SettingDefaultGranularity:
			settings.DefaultGranularity = value
		case constants.SettingInsightModel:
			settings.InsightModel = value
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingActiveProject:      settings.ActiveProjectID,
		constants.SettingDefaultPreset:      settings.DefaultPreset,
		constants.SettingDefaultGranularity: settings.DefaultGranularity,
		constants.SettingInsightModel:       settings.InsightModel,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DefaultPreset == "" {
		settings.DefaultPreset = constants.DefaultPreset
	}
	if settings.DefaultGranularity == "" {
		settings.DefaultGranularity = constants.DefaultGranularity
	}
	if settings.InsightModel == "" {
		settings.InsightModel = constants.DefaultInsightModel
	}
}
