// Package dryrun installs logging stand-ins over the targets while a
// resource action is simulated.
//
// A Controller owns one session at a time. Start installs the full stand-in
// set for a resource/action pair, Finish removes it. Stand-ins that need the
// genuine primitive (read opens, temp files) call Suspend, which removes the
// session's stand-ins for the duration of the work and restores them
// afterwards, also when the work fails or panics.
package dryrun
