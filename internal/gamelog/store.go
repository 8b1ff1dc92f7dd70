package gamelog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rcaudy/ilqgames/internal/jointstate"
)

// Store persists a Log to a directory tree: one zero-padded subdirectory
// per iteration, each containing xs.txt (one row per timestep, the
// joint state as whitespace-separated floats) and costs.txt (one row,
// the per-player total trajectory cost) — the format spec §6
// documents, adapted from the teacher's internal/storage.Store (same
// baseDir/Init/per-run-directory shape, plain-text rows instead of CSV).
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the base directory if it doesn't already exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Flush writes every iteration of log under s.baseDir. Flush is never
// called by the core Solve; callers invoke it explicitly (spec §1: file
// persistence is out of the core solver's scope).
func (s *Store) Flush(log Log) error {
	if err := s.Init(); err != nil {
		return err
	}
	digits := len(strconv.Itoa(len(log) - 1))
	if digits < 1 {
		digits = 1
	}
	for i, rec := range log {
		dirName := fmt.Sprintf("%0*d", digits, i)
		dir := filepath.Join(s.baseDir, dirName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := writeXs(filepath.Join(dir, "xs.txt"), rec.OperatingPoint.Xhat); err != nil {
			return err
		}
		if err := writeCosts(filepath.Join(dir, "costs.txt"), rec.Cost); err != nil {
			return err
		}
	}
	return nil
}

func writeXs(path string, xs []jointstate.JointState) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, x := range xs {
		if err := writeRow(w, x); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeCosts(path string, costs []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeRow(w, costs); err != nil {
		return err
	}
	return w.Flush()
}

func writeRow(w *bufio.Writer, row []float64) error {
	for i, v := range row {
		if i > 0 {
			if _, err := w.WriteString(" "); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

// Run is one persisted iterate, read back from disk.
type Run struct {
	Xs    []jointstate.JointState
	Costs []float64
}

// Load reads the run persisted at s.baseDir/dirName back from disk.
func (s *Store) Load(dirName string) (*Run, error) {
	dir := filepath.Join(s.baseDir, dirName)

	xs, err := readRows(filepath.Join(dir, "xs.txt"))
	if err != nil {
		return nil, err
	}
	costRows, err := readRows(filepath.Join(dir, "costs.txt"))
	if err != nil {
		return nil, err
	}

	run := &Run{Xs: make([]jointstate.JointState, len(xs))}
	for i, row := range xs {
		run.Xs[i] = jointstate.JointState(row)
	}
	if len(costRows) > 0 {
		run.Costs = costRows[0]
	}
	return run, nil
}

func readRows(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	rows := make([][]float64, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
