package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var runsBucket = []byte("runs")

// RunRecord is the ledger entry for one scrape run.
type RunRecord struct {
	RunID       string    `json:"run_id"`
	Area        string    `json:"area"`
	WantTo      string    `json:"want_to"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitempty"`
	ListPages   int       `json:"list_pages"`
	DetailPages int       `json:"detail_pages"`
	Status      string    `json:"status"`
}

const (
	RunStatusRunning = "running"
	RunStatusDone    = "done"
)

// RunLedger records which runs were started and how they ended, in a local
// bbolt file. It is bookkeeping next to the page files, not a database of
// scraped data.
type RunLedger struct {
	db *bolt.DB
}

func OpenRunLedger(path string) (*RunLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open run ledger: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}

	return &RunLedger{db: db}, nil
}

// Start records a new run in running state.
func (l *RunLedger) Start(runID, area, wantTo string) error {
	return l.put(&RunRecord{
		RunID:     runID,
		Area:      area,
		WantTo:    wantTo,
		StartedAt: time.Now().UTC(),
		Status:    RunStatusRunning,
	})
}

// Finish marks a run as done and records its page counts.
func (l *RunLedger) Finish(runID string, listPages, detailPages int) error {
	rec, err := l.Get(runID)
	if err != nil {
		return err
	}
	rec.FinishedAt = time.Now().UTC()
	rec.ListPages = listPages
	rec.DetailPages = detailPages
	rec.Status = RunStatusDone
	return l.put(rec)
}

// Get returns the record for one run id.
func (l *RunLedger) Get(runID string) (*RunRecord, error) {
	var rec RunRecord
	err := l.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(runsBucket).Get([]byte(runID))
		if raw == nil {
			return fmt.Errorf("run %s not in ledger", runID)
		}
		return json.Unmarshal(raw, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Runs returns every recorded run in key order.
func (l *RunLedger) Runs() ([]RunRecord, error) {
	var runs []RunRecord
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(_, raw []byte) error {
			var rec RunRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return err
			}
			runs = append(runs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func (l *RunLedger) put(rec *RunRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).Put([]byte(rec.RunID), raw)
	})
}

func (l *RunLedger) Close() error {
	return l.db.Close()
}
