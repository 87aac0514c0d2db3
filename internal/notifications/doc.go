// Package notifications delivers build results to a Telegram chat.
//
// The Telegram implementation uploads packages through the Bot API
// sendDocument method and can send plain test messages. Delivery failures are
// returned as errors (a *StatusError for non-200 replies); deciding whether a
// failure matters is left to the caller. Requests are never retried.
package notifications
