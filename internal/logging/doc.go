// Package logging wraps a zap sugared logger with key/value redaction of the
// petitioner's personal data.
//
// Keys naming the petitioner or an address are replaced with [REDACTED];
// case numbers are logged as a short hash so that log lines of one case can
// still be correlated. Redaction can be turned off with
// WZ_LOG_REDACTION=off for local debugging.
package logging
