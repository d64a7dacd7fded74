// Package session owns the per-operator assignment state: the shift buckets
// and diagnostic log for the currently selected date. State survives any
// number of operator actions on the same date and is rebuilt from scratch
// when the date changes.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/reconcile"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/table"
)

// ErrNoActivity is returned when an action needs the activity upload and
// none was provided. Nothing downstream can run without it.
var ErrNoActivity = errors.New("no activity table uploaded")

// Session is the assignment store for one operator.
type Session struct {
	ID string

	// Activity is the raw uploaded activity table; durations stay in
	// seconds here so orphan detection sees them unconverted.
	Activity *models.Table

	Date    time.Time
	HasDate bool
	Buckets []*models.ShiftBucket
	Log     []string
}

// Store holds sessions keyed by id. A single operator is assumed, but
// handlers run on concurrent requests, so access is serialized.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for the given id, creating it on first use.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id}
		s.sessions[id] = sess
	}
	return sess
}

// SetActivity installs a freshly uploaded activity table and discards any
// date-scoped state computed against the previous one.
func (s *Session) SetActivity(t *models.Table) {
	s.Activity = t
	s.Date = time.Time{}
	s.HasDate = false
	s.Buckets = nil
	s.Log = nil
}

// SelectDate populates the shift buckets and log for the given date by
// running partition, matching and unit conversion. Selecting the date that
// is already loaded is a no-op: recomputing would silently discard rows the
// operator reassigned by hand. Selecting a different date replaces the
// buckets and log wholesale.
func (s *Session) SelectDate(date time.Time, schedule, mapping *models.Table) error {
	if s.Activity == nil {
		return ErrNoActivity
	}
	if s.HasDate && table.SameDay(s.Date, date) {
		return nil
	}

	translations := reconcile.BuildTranslationTable(mapping)
	activity := reconcile.NormalizeActivity(s.Activity)
	groups := reconcile.Partition(schedule, date)

	buckets := make([]*models.ShiftBucket, 0, len(groups))
	var log []string
	for _, g := range groups {
		bucket, entries := reconcile.MatchShift(g.Users, translations, activity)
		reconcile.ConvertDurations(bucket, reconcile.DurationColumns)
		buckets = append(buckets, &models.ShiftBucket{Label: g.Label, Table: bucket})
		log = append(log, entries...)
	}

	s.Buckets = buckets
	s.Log = log
	s.Date = date
	s.HasDate = true
	return nil
}

// Orphans recomputes the unassigned-activity candidates against the
// current buckets. Nothing is cached: a candidate reassigned a moment ago
// no longer shows up.
func (s *Session) Orphans(thresholdMinutes float64) (*models.Table, error) {
	if s.Activity == nil {
		return nil, ErrNoActivity
	}
	assigned := reconcile.AssignedKeys(s.Buckets)
	return reconcile.DetectOrphans(assigned, s.Activity, thresholdMinutes), nil
}

// Reassign folds the candidate rows for each selected key into the target
// shift, creating the bucket when the shift name is new. Candidates are
// recomputed per key, so a key whose rows vanished since the operator last
// looked (for example because an earlier key in the same request claimed
// them) logs a failure without aborting the remaining keys. Returns the log
// lines appended by this call.
func (s *Session) Reassign(keys []string, targetShift string, thresholdMinutes float64) ([]string, error) {
	if s.Activity == nil {
		return nil, ErrNoActivity
	}
	label := reconcile.Normalize(targetShift)

	var appended []string
	for _, key := range keys {
		candidates, err := s.Orphans(thresholdMinutes)
		if err != nil {
			return appended, err
		}

		var rows []models.Row
		for _, row := range candidates.Rows {
			if row[reconcile.KeyColumn] == key {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			appended = append(appended, fmt.Sprintf("no se encontró el candidato para reasignar: %s", key))
			continue
		}

		bucket := s.bucket(label)
		for _, row := range rows {
			r := row.Clone()
			delete(r, reconcile.KeyColumn)
			delete(r, reconcile.MinutesColumn)
			bucket.Table.Append(r)
		}
		appended = append(appended, fmt.Sprintf("usuario reasignado al turno %s: %s", label, key))
	}

	s.Log = append(s.Log, appended...)
	return appended, nil
}

func (s *Session) bucket(label string) *models.ShiftBucket {
	for _, b := range s.Buckets {
		if b.Label == label {
			return b
		}
	}
	b := &models.ShiftBucket{Label: label, Table: models.NewTable(s.Activity.Columns)}
	s.Buckets = append(s.Buckets, b)
	return b
}
