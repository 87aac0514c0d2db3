// Package config loads, normalizes, and validates apkship configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID. The Config type centralizes every
// knob the build pipeline and CLI need, so the project location, Gradle
// invocation, and bot credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
