// Package domain holds the live game session: per-model battlefield state
// tracked across turns, with marker clamps, the forward status cycle, and
// the Tough interception on the down-to-out transition.
package domain
