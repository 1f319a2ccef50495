// Package triage provides the business boundary for symptom triage.
// It defines the Engine (pure rule-based matching, scoring, and red-flag
// detection), the Service (report lifecycle, persistence, escalation),
// the Store interface, and domain models.
package triage
