// Package timezone centralizes time handling so every timestamp the service
// persists or renders lives in the single configured application timezone.
package timezone
