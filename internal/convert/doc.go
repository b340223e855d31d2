// Package convert translates between the host model (package host) and the
// wire model (package protocol).
//
// CodeConverter turns host values into request parameters and
// ProtocolConverter turns server results into host values. Both are plain
// values carrying an injectable URI transcoder, so several clients can use
// different URI schemes side by side.
//
// Positions and ranges round-trip through optional.Value so an absent range
// stays absent and a null range stays null. Kind enums are shifted by one
// because the host counts from zero and the wire from one.
package convert
