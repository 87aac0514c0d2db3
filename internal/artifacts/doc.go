// Package artifacts finds built Android packages and decides which one to ship.
//
// Locate performs a single point-in-time glob scan. Select prefers the
// universal package (one APK covering every ABI) and falls back to the first
// match. Caption renders the HTML message sent alongside the upload.
package artifacts
