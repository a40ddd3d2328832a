// Package alarm holds saved alarms, the registry that tracks whether each
// one has fired today, and the matching rule that compares them to wall time.
package alarm
