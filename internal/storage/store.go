package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/oceansim/internal/config"
	"github.com/san-kum/oceansim/internal/sim"
)

// Store keeps one directory per run under baseDir: metadata.json with
// the configuration and final metrics, series.csv with the recorded
// time series.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	GridW     int                `json:"grid_w"`
	GridH     int                `json:"grid_h"`
	Particles int                `json:"particles"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Wind      float64            `json:"wind_strength"`
	Coriolis  float64            `json:"coriolis_strength"`
	TempDiff  float64            `json:"temperature_diff"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	// Seed in the id keeps ensemble runs saved within the same second
	// from colliding.
	runID := fmt.Sprintf("ocean_%d_%d", time.Now().Unix(), cfg.Seed)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		GridW:     cfg.GridW,
		GridH:     cfg.GridH,
		Particles: cfg.Particles,
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Wind:      cfg.Forcing.WindStrength,
		Coriolis:  cfg.Forcing.CoriolisStrength,
		TempDiff:  cfg.Forcing.TemperatureDiff,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	seriesFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer seriesFile.Close()

	w := csv.NewWriter(seriesFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "kinetic_energy", "mean_speed"}); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.KineticEnergy[i], 'f', 6, 64),
			strconv.FormatFloat(result.MeanSpeed[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Series holds the columns of a run's recorded time series.
type Series struct {
	Times         []float64
	KineticEnergy []float64
	MeanSpeed     []float64
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		ke, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		ms, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		series.Times = append(series.Times, t)
		series.KineticEnergy = append(series.KineticEnergy, ke)
		series.MeanSpeed = append(series.MeanSpeed, ms)
	}

	return series, nil
}

type exportData struct {
	RunMetadata
	Times         []float64 `json:"times"`
	KineticEnergy []float64 `json:"kinetic_energy"`
	MeanSpeed     []float64 `json:"mean_speed"`
}

// ExportJSONStdout writes a run's metadata and series as indented
// JSON to standard output.
func ExportJSONStdout(meta *RunMetadata, series *Series) error {
	data := exportData{
		RunMetadata:   *meta,
		Times:         series.Times,
		KineticEnergy: series.KineticEnergy,
		MeanSpeed:     series.MeanSpeed,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
