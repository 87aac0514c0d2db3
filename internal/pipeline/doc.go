// Package pipeline runs the build-and-notify sequence: build, locate, select,
// upload. Stages run strictly in order and each failure is reported through
// an Outcome value instead of terminating the process; only the CLI entry
// point turns an Outcome into an exit code.
package pipeline
