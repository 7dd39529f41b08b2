package config

import "strings"

// DefaultCronSchedules maps job names to their default schedules.
var DefaultCronSchedules = map[string]string{
	"alertscan":      "@hourly",
	"trainingstatus": "0 6 * * *",
	"searchreindex":  "30 2 * * *",
}

// loadCronSchedules applies CRON_<JOB> overrides, e.g. CRON_ALERTSCAN="@every 10m".
func loadCronSchedules() map[string]string {
	out := make(map[string]string, len(DefaultCronSchedules))
	for name, sched := range DefaultCronSchedules {
		out[name] = GetEnv("CRON_"+strings.ToUpper(name), sched)
	}
	return out
}
