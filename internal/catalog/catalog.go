// package catalog holds the read-only song catalog and its search.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/samber/lo"
)

//go:embed default.toml
var defaultCatalog []byte

// Group names a category and lists its tracks by id, in display order.
type Group struct {
	Name     string   `toml:"name" json:"name"`
	TrackIDs []string `toml:"tracks" json:"tracks"`
}

// document is the on-disk TOML shape of a catalog.
type document struct {
	Tracks     []models.Track `toml:"tracks"`
	Categories []Group        `toml:"categories"`
}

// Catalog is an ordered list of tracks partitioned into named groups. It is never mutated after construction.
type Catalog struct {
	tracks []models.Track
	groups []Group
	index  map[string]int
}

// New builds a Catalog from tracks and groups and validates it.
func New(tracks []models.Track, groups []Group) (*Catalog, error) {
	c := &Catalog{
		tracks: append([]models.Track(nil), tracks...),
		groups: make([]Group, len(groups)),
	}
	for i, g := range groups {
		c.groups[i] = Group{Name: g.Name, TrackIDs: append([]string(nil), g.TrackIDs...)}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.index = make(map[string]int, len(c.tracks))
	for i, t := range c.tracks {
		c.index[t.ID] = i
	}
	return c, nil
}

// Default returns the built-in eight-track catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded catalog: %v", err))
	}
	return c
}

// Parse decodes a TOML catalog. Tracks without an id are assigned a generated one.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidCatalog, err)
	}

	for i := range doc.Tracks {
		if strings.TrimSpace(doc.Tracks[i].ID) == "" {
			doc.Tracks[i].ID = shared.GenerateID()
		}
	}

	return New(doc.Tracks, doc.Categories)
}

// Load reads and parses a TOML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Encode writes the catalog as TOML in the same shape [Parse] reads.
func (c *Catalog) Encode(w io.Writer) error {
	doc := document{Tracks: c.Tracks(), Categories: c.Groups()}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}

// Validate checks that ids are present and unique, titles are set and every group references known tracks.
//
// Durations are not checked here; the transport rejects malformed ones when a track is selected.
func (c *Catalog) Validate() error {
	if len(c.tracks) == 0 {
		return fmt.Errorf("%w: %w", shared.ErrInvalidCatalog, shared.ErrEmptyCatalog)
	}

	seen := make(map[string]struct{}, len(c.tracks))
	for i, t := range c.tracks {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: track %d has no id", shared.ErrInvalidCatalog, i)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: track %q has no title", shared.ErrInvalidCatalog, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate track id %q", shared.ErrInvalidCatalog, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	names := make(map[string]struct{}, len(c.groups))
	for _, g := range c.groups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: category has no name", shared.ErrInvalidCatalog)
		}
		if _, dup := names[g.Name]; dup {
			return fmt.Errorf("%w: duplicate category %q", shared.ErrInvalidCatalog, g.Name)
		}
		names[g.Name] = struct{}{}

		members := make(map[string]struct{}, len(g.TrackIDs))
		for _, id := range g.TrackIDs {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("%w: category %q references unknown track %q", shared.ErrInvalidCatalog, g.Name, id)
			}
			if _, dup := members[id]; dup {
				return fmt.Errorf("%w: category %q lists track %q more than once", shared.ErrInvalidCatalog, g.Name, id)
			}
			members[id] = struct{}{}
		}
	}

	return nil
}

// Len returns the number of tracks.
func (c *Catalog) Len() int { return len(c.tracks) }

// Tracks returns a copy of all tracks in catalog order.
func (c *Catalog) Tracks() []models.Track {
	return append([]models.Track(nil), c.tracks...)
}

// Groups returns a copy of the category definitions.
func (c *Catalog) Groups() []Group {
	return lo.Map(c.groups, func(g Group, _ int) Group {
		return Group{Name: g.Name, TrackIDs: append([]string(nil), g.TrackIDs...)}
	})
}

// Categories resolves each group into its tracks, in display order.
func (c *Catalog) Categories() []models.Category {
	return lo.Map(c.groups, func(g Group, _ int) models.Category {
		return models.Category{
			Name: g.Name,
			Tracks: lo.Map(g.TrackIDs, func(id string, _ int) models.Track {
				return c.tracks[c.index[id]]
			}),
		}
	})
}

// Find looks up a track by id.
func (c *Catalog) Find(id string) (models.Track, error) {
	i, ok := c.index[id]
	if !ok {
		return models.Track{}, fmt.Errorf("%w: %q", shared.ErrTrackNotFound, id)
	}
	return c.tracks[i], nil
}

// Search runs [Search] over the whole catalog.
func (c *Catalog) Search(query string) []models.Track {
	return Search(query, c.tracks)
}

// Search returns, in order, the tracks whose title or artist contains query, ignoring case.
//
// A query that is blank after trimming returns an empty result, not every track. Callers decide whether an
// empty query means "no search active".
func Search(query string, tracks []models.Track) []models.Track {
	if strings.TrimSpace(query) == "" {
		return []models.Track{}
	}

	needle := strings.ToLower(query)
	return lo.Filter(tracks, func(t models.Track, _ int) bool {
		return strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Artist), needle)
	})
}
