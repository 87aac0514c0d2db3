// Package builder runs the Gradle wrapper for the configured Android project.
//
// A build is a single synchronous invocation: stdout lines are streamed to a
// callback for logging, stderr is captured so a failed build can be reported
// verbatim. The package never retries; callers decide what a failure means.
package builder
