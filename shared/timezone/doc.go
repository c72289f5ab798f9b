// Package timezone pins wall-clock handling to the zone named by APP_TIMEZONE
// (an IANA name such as "Asia/Jakarta"; UTC when unset or unknown).
//
// Bookings are whole calendar days. Day and ParseDay reduce instants to the
// day they fall on in the application zone and represent it as midnight UTC,
// the same value a Postgres date column scans into, so days compare with
// Equal and order with Before regardless of where the server runs.
package timezone
