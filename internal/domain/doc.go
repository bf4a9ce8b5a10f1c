// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (records/state), contracts (interfaces), and the
// closed set of typed store errors.
package domain
