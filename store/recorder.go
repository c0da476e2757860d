package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"snake-ai/game"
)

// Recorder writes one JSON snapshot per tick, one file per round, on a
// background goroutine. Snapshots are dropped when the queue is full.
type Recorder struct {
	dir     string
	logger  *log.Logger
	records chan game.Snapshot
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	dropped int

	// owned by writeLoop
	file    *os.File
	writer  *bufio.Writer
	encoder *json.Encoder
	roundID string
}

// NewRecorder creates dir and starts the writer
func NewRecorder(dir string, logger *log.Logger) (*Recorder, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create records dir: %w", err)
	}

	r := &Recorder{
		dir:     dir,
		logger:  logger,
		records: make(chan game.Snapshot, 1000),
	}

	r.wg.Add(1)
	go r.writeLoop()

	return r, nil
}

// RecordPath is where the snapshots of round id are written
func RecordPath(dir, id string) string {
	return filepath.Join(dir, "round_"+id+".jsonl")
}

// Record queues a snapshot without blocking. Returns false if it was dropped.
func (r *Recorder) Record(s game.Snapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}

	select {
	case r.records <- s:
		return true
	default:
		r.dropped++
		return false
	}
}

// OnEvent records the snapshot carried by every tick
func (r *Recorder) OnEvent(e game.Event) {
	if e.Type == game.EventTick {
		r.Record(e.Snapshot)
	}
}

// Dropped returns how many snapshots were discarded because the queue was full
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes pending snapshots and closes the current file
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.records)
	dropped := r.dropped
	r.mu.Unlock()

	r.wg.Wait()
	if dropped > 0 {
		r.logger.Printf("Recorder dropped %d snapshots on a full queue", dropped)
	}
	return r.closeFile()
}

func (r *Recorder) writeLoop() {
	defer r.wg.Done()

	for s := range r.records {
		if s.RoundID != r.roundID || r.encoder == nil {
			if err := r.rotate(s.RoundID); err != nil {
				r.logger.Printf("Error opening record file: %v", err)
				continue
			}
		}
		if err := r.encoder.Encode(s); err != nil {
			r.logger.Printf("Error recording tick %d: %v", s.Tick, err)
		}
	}
}

func (r *Recorder) rotate(roundID string) error {
	if err := r.closeFile(); err != nil {
		r.logger.Printf("Error closing record file: %v", err)
	}

	f, err := os.OpenFile(RecordPath(r.dir, roundID), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("create record file: %w", err)
	}
	r.file = f
	r.writer = bufio.NewWriter(f)
	r.encoder = json.NewEncoder(r.writer)
	r.roundID = roundID
	return nil
}

func (r *Recorder) closeFile() error {
	if r.file == nil {
		return nil
	}
	flushErr := r.writer.Flush()
	closeErr := r.file.Close()
	r.file, r.writer, r.encoder = nil, nil, nil
	return errors.Join(flushErr, closeErr)
}

// ReadRecord loads every snapshot of a recorded round
func ReadRecord(path string) ([]game.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record: %w", err)
	}
	defer f.Close()

	var snaps []game.Snapshot
	dec := json.NewDecoder(bufio.NewReader(f))
	for dec.More() {
		var s game.Snapshot
		if err := dec.Decode(&s); err != nil {
			return snaps, fmt.Errorf("decode record %s: %w", path, err)
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}
