// Package evidence collects per-alert field evidence: before/after imagery
// references, dated historical snapshots, photos, and voice notes. The store
// is session-scoped; nothing here is persisted.
package evidence

import (
	"fmt"
	"time"
)

// Snapshot is a dated historical imagery reference for an alert
type Snapshot struct {
	Date    string
	TileURL string
}

// Photo is a photo taken in the field for an alert
type Photo struct {
	ID    string
	Path  string
	Taken time.Time
}

// VoiceNote is an audio note recorded in the field for an alert
type VoiceNote struct {
	ID       string
	Path     string
	Duration time.Duration
	Recorded time.Time
}

// Record holds all evidence gathered for one alert
type Record struct {
	AlertID    string
	BeforeURL  string
	AfterURL   string
	Snapshots  []Snapshot
	Photos     []Photo
	VoiceNotes []VoiceNote
}

// Camera captures photos. The real device lives outside this core; tests and
// the terminal build use the stub.
type Camera interface {
	Capture() (Photo, error)
}

// Recorder records voice notes, same deal as Camera
type Recorder interface {
	Record() (VoiceNote, error)
}

// StubCamera produces placeholder photos with sequential identifiers
type StubCamera struct {
	count int
}

// Capture returns the next placeholder photo
func (c *StubCamera) Capture() (Photo, error) {
	c.count++
	id := fmt.Sprintf("photo-%03d", c.count)
	return Photo{
		ID:    id,
		Path:  id + ".jpg",
		Taken: time.Now(),
	}, nil
}

// StubRecorder produces placeholder voice notes with sequential identifiers
type StubRecorder struct {
	count int
}

// Record returns the next placeholder voice note
func (r *StubRecorder) Record() (VoiceNote, error) {
	r.count++
	id := fmt.Sprintf("note-%03d", r.count)
	return VoiceNote{
		ID:       id,
		Path:     id + ".m4a",
		Duration: 5 * time.Second,
		Recorded: time.Now(),
	}, nil
}

// Store keeps evidence records keyed by alert ID for the current session.
// Mutation only happens inside the single-threaded event loop, so there is
// no locking.
type Store struct {
	imageryBase string
	records     map[string]*Record
}

// NewStore creates an evidence store. imageryBase is the tile service prefix
// used to derive before/after and snapshot imagery URLs.
func NewStore(imageryBase string) *Store {
	return &Store{
		imageryBase: imageryBase,
		records:     make(map[string]*Record),
	}
}

// ForAlert returns the evidence record for an alert, creating it with
// derived imagery references on first access. detectedDate seeds the
// before/after pair and the snapshot history.
func (s *Store) ForAlert(alertID, detectedDate string) *Record {
	if rec, ok := s.records[alertID]; ok {
		return rec
	}

	rec := &Record{
		AlertID:   alertID,
		BeforeURL: fmt.Sprintf("%s/%s/before.png", s.imageryBase, alertID),
		AfterURL:  fmt.Sprintf("%s/%s/after.png", s.imageryBase, alertID),
	}
	if detectedDate != "" {
		rec.Snapshots = []Snapshot{
			{Date: detectedDate, TileURL: fmt.Sprintf("%s/%s/%s.png", s.imageryBase, alertID, detectedDate)},
		}
	}
	s.records[alertID] = rec
	return rec
}

// AddSnapshot appends a dated snapshot reference to an alert's record
func (s *Store) AddSnapshot(alertID, date string) {
	rec, ok := s.records[alertID]
	if !ok {
		rec = s.ForAlert(alertID, "")
	}
	rec.Snapshots = append(rec.Snapshots, Snapshot{
		Date:    date,
		TileURL: fmt.Sprintf("%s/%s/%s.png", s.imageryBase, alertID, date),
	})
}

// AddPhoto captures a photo with the given camera and attaches it
func (s *Store) AddPhoto(alertID string, cam Camera) (Photo, error) {
	photo, err := cam.Capture()
	if err != nil {
		return Photo{}, fmt.Errorf("capture failed: %w", err)
	}
	rec := s.ForAlert(alertID, "")
	rec.Photos = append(rec.Photos, photo)
	return photo, nil
}

// AddVoiceNote records a voice note with the given recorder and attaches it
func (s *Store) AddVoiceNote(alertID string, rec Recorder) (VoiceNote, error) {
	note, err := rec.Record()
	if err != nil {
		return VoiceNote{}, fmt.Errorf("recording failed: %w", err)
	}
	record := s.ForAlert(alertID, "")
	record.VoiceNotes = append(record.VoiceNotes, note)
	return note, nil
}

// Count returns the number of alerts with evidence records
func (s *Store) Count() int {
	return len(s.records)
}
