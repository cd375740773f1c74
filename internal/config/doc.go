// Package config loads vista's TOML configuration.
//
// # Discovery
//
// Load reads the given path, or ~/.config/vista/config.toml when the path is
// empty. A missing file is not an error: Default is returned instead. Blank
// values in an existing file fall back to their defaults, and every path
// value has a leading ~ expanded.
//
// # Keys
//
//	language            i18n language tag (en)
//	device              desktop or mobile (desktop)
//	template            named template; empty picks pcLive or mobileLive
//	template_file       TOML or YAML template file, watched for changes
//	poster              initial poster text
//	player_api          player HTTP API host:port; empty disables polling
//	player_state_file   JSON-lines state file; the last line is current
//	poll_seconds        player poll interval (1)
//	resize_debounce_ms  resize and orientation settle delay (120)
//	auto_hide_seconds   hide header and footer after inactivity (0 = off)
//	log_file            slog destination (~/.local/state/vista/vista.log)
//	log_level           debug, info, warn or error (info)
//	metrics_addr        Prometheus listener address; empty disables
//	width, height       container size outside fullscreen (0 = window)
//
// # Errors
//
// TOML syntax errors are wrapped as "parse config". Out-of-range values such
// as an unknown device or a negative interval are configuration errors from
// internal/errors and are never coerced.
package config
