// Package models defines the value types shared by the catalog, the transport and the presentation layers.
//
//   - [Track] : One catalog entry. Immutable once loaded; duration is kept as the "M:SS" string the catalog provides
//     and converted to whole seconds by [Track.Seconds].
//   - [Category] : A named, ordered subset of the catalog used for display.
//   - [PlaybackState] : A read-only snapshot of the transport. The transport owns the live state and hands out copies.
//   - [Status] : Transport status (idle, playing, paused, stopped).
//
// Cover art is optional. [Track.CoverURL] substitutes [DefaultCover] when the stored reference is blank,
// so the fallback is applied when reading, never when storing.
package models
