package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/tunes/internal/catalog"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

// CatalogRepository stores and loads the track catalog.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository with the given database connection
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Save replaces the stored catalog with c.
func (r *CatalogRepository) Save(c *catalog.Catalog) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"category_tracks", "categories", "tracks"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, t := range c.Tracks() {
		if err := r.insertTrack(tx, t); err != nil {
			return err
		}
	}

	for _, g := range c.Groups() {
		if err := r.insertGroup(tx, g); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// Load reads the stored catalog. It returns [shared.ErrCatalogNotSaved] when nothing has been saved.
func (r *CatalogRepository) Load() (*catalog.Catalog, error) {
	tracks, err := r.listTracks()
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, shared.ErrCatalogNotSaved
	}

	groups, err := r.listGroups()
	if err != nil {
		return nil, err
	}

	c, err := catalog.New(tracks, groups)
	if err != nil {
		return nil, fmt.Errorf("stored catalog is invalid: %w", err)
	}
	return c, nil
}

// Count returns the number of stored tracks.
func (r *CatalogRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return n, nil
}

func (r *CatalogRepository) insertTrack(tx *sql.Tx, t models.Track) error {
	sequence, err := NextSequence(tx, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `
		INSERT INTO tracks (id, sequence, title, artist, duration, cover)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, t.ID, sequence, t.Title, t.Artist, t.Duration, t.Cover); err != nil {
		return fmt.Errorf("failed to insert track %q: %w", t.ID, err)
	}
	return nil
}

func (r *CatalogRepository) insertGroup(tx *sql.Tx, g catalog.Group) error {
	sequence, err := NextSequence(tx, "categories")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	if _, err := tx.Exec("INSERT INTO categories (id, sequence, name) VALUES (?, ?, ?)", id, sequence, g.Name); err != nil {
		return fmt.Errorf("failed to insert category %q: %w", g.Name, err)
	}

	for i, trackID := range g.TrackIDs {
		_, err := tx.Exec(
			"INSERT INTO category_tracks (category_id, track_id, position) VALUES (?, ?, ?)",
			id, trackID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to add track %q to category %q: %w", trackID, g.Name, err)
		}
	}
	return nil
}

func (r *CatalogRepository) listTracks() ([]models.Track, error) {
	rows, err := r.db.Query("SELECT id, title, artist, duration, cover FROM tracks ORDER BY sequence ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var t models.Track
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Duration, &t.Cover); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tracks, nil
}

// listGroups reads categories with their members in one pass. Empty categories come back with a NULL track.
func (r *CatalogRepository) listGroups() ([]catalog.Group, error) {
	query := `
		SELECT c.id, c.name, ct.track_id
		FROM categories c
		LEFT JOIN category_tracks ct ON ct.category_id = c.id
		ORDER BY c.sequence ASC, ct.position ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var (
		groups []catalog.Group
		lastID string
	)
	for rows.Next() {
		var (
			id      string
			name    string
			trackID sql.NullString
		)
		if err := rows.Scan(&id, &name, &trackID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		if id != lastID {
			groups = append(groups, catalog.Group{Name: name, TrackIDs: []string{}})
			lastID = id
		}
		if trackID.Valid {
			g := &groups[len(groups)-1]
			g.TrackIDs = append(g.TrackIDs, trackID.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return groups, nil
}
