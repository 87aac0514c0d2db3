// Package preflight provides readiness checks for the local build
// environment and the Telegram bot apkship reports to.
//
// The checks run in two contexts:
//   - "apkship check" prints every result, as status lines or a table.
//   - "apkship run --preflight" runs them before the build and aborts when a
//     required check fails, so a misconfigured bot is noticed before a
//     long Gradle build rather than after it.
package preflight
