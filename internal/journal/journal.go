// Package journal records finished scenario runs in a local bolt database.
package journal

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tidewatch/internal/engine"
	"github.com/samdwyer/tidewatch/internal/telemetry"
)

// Run is one finished scenario run.
type Run struct {
	ID         string          `json:"id"`
	SessionID  string          `json:"sessionId"`
	ScenarioID string          `json:"scenarioId"`
	Score      int             `json:"score"`
	Tier       string          `json:"tier"`
	History    []engine.Record `json:"history"`
	FinishedAt time.Time       `json:"finishedAt"`
}

// NewRun builds a Run from a terminal state.
func NewRun(sessionID string, s engine.State, now time.Time) Run {
	return Run{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		ScenarioID: s.ScenarioID,
		Score:      s.Score,
		Tier:       s.Tier().String(),
		History:    s.History,
		FinishedAt: now.UTC(),
	}
}

// ErrNotTerminal is returned when recording a run that has turns left.
var ErrNotTerminal = errors.New("run is not finished")

// Journal is a bolt-backed log of runs, one bucket per scenario with keys
// ordered by the bucket sequence. A nil *Journal is a disabled journal:
// writes are dropped and reads return nothing.
type Journal struct {
	db *bolt.DB
}

// Open opens or creates the journal at path. An empty path yields a nil,
// disabled journal.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, nil
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends a finished run.
func (j *Journal) Record(ctx context.Context, run Run) error {
	if j == nil {
		return nil
	}

	tracer := telemetry.Tracer("journal")
	_, span := tracer.Start(ctx, "journal.record")
	span.SetAttributes(
		attribute.String("scenario.id", run.ScenarioID),
		attribute.Int("score", run.Score),
		attribute.String("tier", run.Tier),
	)
	defer span.End()

	if run.ScenarioID == "" {
		return errors.New("recording run: scenario id is required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	bs, err := json.Marshal(&run)
	if err != nil {
		return fmt.Errorf("encoding run: %w", err)
	}

	err = j.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(run.ScenarioID))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), bs)
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// RecordState records s if it is terminal.
func (j *Journal) RecordState(ctx context.Context, sessionID string, s engine.State) (Run, error) {
	if !s.Terminal() {
		return Run{}, fmt.Errorf("recording %s at turn %d of %d: %w", s.ScenarioID, s.Cursor, s.Turns, ErrNotTerminal)
	}
	run := NewRun(sessionID, s, time.Now())
	return run, j.Record(ctx, run)
}

// List returns up to limit runs for a scenario, newest first. A limit of
// zero or less returns every run.
func (j *Journal) List(ctx context.Context, scenarioID string, limit int) ([]Run, error) {
	if j == nil {
		return nil, nil
	}

	var runs []Run
	err := j.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(scenarioID))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("decoding run %d: %w", binary.BigEndian.Uint64(k), err)
			}
			runs = append(runs, run)
			if limit > 0 && len(runs) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s runs: %w", scenarioID, err)
	}
	return runs, nil
}

// Best returns the highest scoring run for a scenario. The earliest run
// wins ties. The boolean is false when no runs exist.
func (j *Journal) Best(ctx context.Context, scenarioID string) (Run, bool, error) {
	runs, err := j.List(ctx, scenarioID, 0)
	if err != nil {
		return Run{}, false, err
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	// runs are newest first, so >= keeps moving toward the earliest tie
	best := runs[0]
	for _, r := range runs[1:] {
		if r.Score >= best.Score {
			best = r
		}
	}
	return best, true, nil
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
