// Package main hosts the apkship CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, then hands off to the
// internal packages: the pipeline for builds, artifacts for listing,
// preflight for readiness checks and notifications for bot tests. Only main
// turns a result into a process exit status.
package main
