// Package shell detects the user's shell so that PATH advice can be given
// in a syntax the user can paste directly.
//
// Detection order:
//  1. $SHELL environment variable
//  2. Name of the parent process (gopsutil)
//
// Supported shells are bash, zsh and fish; anything else is reported as
// unknown and gets POSIX-style advice.
package shell
