// Package timezone keeps the application clock in the zone set by APP_TIMEZONE
// (an IANA name such as "UTC" or "Europe/London"). Rows without a caller
// supplied updated_at are stamped with timezone.Now.
package timezone
