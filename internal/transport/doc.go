// Package transport simulates playback of a catalog track.
//
// A [Machine] owns the playback state: the selected track, whether it is playing, elapsed seconds and progress percent.
// Nothing is decoded; "playing" means a scheduler advances elapsed time by one second per tick.
//
// # States
//
//   - Idle    : no track selected
//   - Playing : a track is selected and the scheduler is running
//   - Paused  : a track is selected and held at its position
//   - Stopped : the track reached its end and was rewound to 0; it stays selected
//
// # Scheduling
//
// Entering Playing starts one scheduler goroutine that reads a [Ticker] and applies exactly one tick per firing.
// Leaving Playing (pause, a new selection, end of track) or calling [Machine.Close] cancels it.
// Each scheduler carries a generation number; a tick from a cancelled generation is discarded, so a late tick
// can never touch the state of a newer selection.
//
// # Observing
//
// Every operation is synchronous and updates the whole state under one lock. [Machine.State] returns a snapshot and
// [Machine.Subscribe] delivers a fresh snapshot after each mutation. Subscriber channels hold only the newest
// snapshot, so a slow reader skips intermediate states but never blocks the machine.
package transport
