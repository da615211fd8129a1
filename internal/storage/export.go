// ABOUTME: Export and import of workout data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; imports are idempotent.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitspire/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the document format version written by GetAllData.
const ExportVersion = "1.0"

// ExportData represents the full export format. Workouts and templates
// refer to exercises by name so a document can be loaded into another
// database whose IDs differ.
type ExportData struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool       string           `json:"tool" yaml:"tool"`
	Exercises  []ExportExercise `json:"custom_exercises" yaml:"custom_exercises"`
	Workouts   []ExportWorkout  `json:"workouts" yaml:"workouts"`
	Templates  []ExportTemplate `json:"templates" yaml:"templates"`
}

// ExportExercise is a custom catalog entry.
type ExportExercise struct {
	Name         string `json:"name" yaml:"name"`
	MuscleGroup  string `json:"muscle_group" yaml:"muscle_group"`
	Equipment    string `json:"equipment" yaml:"equipment"`
	Instructions string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// ExportWorkout is one workout aggregate.
type ExportWorkout struct {
	SessionToken string              `json:"session_token,omitempty" yaml:"session_token,omitempty"`
	Name         string              `json:"name" yaml:"name"`
	Date         time.Time           `json:"date" yaml:"date"`
	Exercises    []ExportWorkoutItem `json:"exercises" yaml:"exercises"`
}

// ExportWorkoutItem is one exercise of an exported workout, in order.
type ExportWorkoutItem struct {
	Exercise string            `json:"exercise" yaml:"exercise"`
	Sets     []models.SetInput `json:"sets" yaml:"sets"`
}

// ExportTemplate is a template as an ordered list of exercise names.
type ExportTemplate struct {
	Name      string   `json:"name" yaml:"name"`
	Exercises []string `json:"exercises" yaml:"exercises"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	catalog, err := d.ListAllExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	workouts, err := d.allWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	templates, err := d.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "fitspire",
		Exercises:  []ExportExercise{},
		Workouts:   make([]ExportWorkout, 0, len(workouts)),
		Templates:  make([]ExportTemplate, 0, len(templates)),
	}

	for _, e := range catalog {
		if !e.IsCustom {
			continue
		}
		data.Exercises = append(data.Exercises, ExportExercise{
			Name:         e.Name,
			MuscleGroup:  e.MuscleGroup,
			Equipment:    e.Equipment,
			Instructions: e.Instructions,
		})
	}

	for _, w := range workouts {
		ew := ExportWorkout{
			SessionToken: w.SessionToken,
			Name:         w.Name,
			Date:         w.Date,
			Exercises:    make([]ExportWorkoutItem, 0, len(w.Exercises)),
		}
		for _, ex := range w.Exercises {
			item := ExportWorkoutItem{Exercise: ex.Exercise.Name, Sets: make([]models.SetInput, 0, len(ex.Sets))}
			for _, s := range ex.Sets {
				item.Sets = append(item.Sets, models.SetInput{Weight: s.Weight, Reps: s.Reps})
			}
			ew.Exercises = append(ew.Exercises, item)
		}
		data.Workouts = append(data.Workouts, ew)
	}

	for _, t := range templates {
		et := ExportTemplate{Name: t.Name, Exercises: make([]string, 0, len(t.Exercises))}
		for _, te := range t.Exercises {
			et.Exercises = append(et.Exercises, te.Exercise.Name)
		}
		data.Templates = append(data.Templates, et)
	}

	return data, nil
}

// ImportData loads an export document. Missing custom exercises and
// templates are created, and workouts are saved by session token, so
// importing the same document twice changes nothing.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	for _, e := range data.Exercises {
		_, err := d.FindExerciseByName(ctx, e.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("import exercise %q: %w", e.Name, err)
		}
		ex := models.NewCustomExercise(e.Name, e.MuscleGroup, e.Equipment).WithInstructions(e.Instructions)
		if err := d.CreateCustomExercise(ctx, ex); err != nil {
			return fmt.Errorf("import exercise %q: %w", e.Name, err)
		}
	}

	ids := make(map[string]int64)
	resolve := func(name string) (int64, error) {
		key := strings.ToLower(strings.TrimSpace(name))
		if id, ok := ids[key]; ok {
			return id, nil
		}
		e, err := d.FindExerciseByName(ctx, name)
		if err != nil {
			return 0, err
		}
		ids[key] = e.ID
		return e.ID, nil
	}

	for _, w := range data.Workouts {
		in := models.NewWorkoutInput(w.Name, w.Date).WithSessionToken(w.SessionToken)
		for _, item := range w.Exercises {
			id, err := resolve(item.Exercise)
			if err != nil {
				return fmt.Errorf("import workout %q: %w", w.Name, err)
			}
			ex := in.AddExercise(id)
			ex.Sets = append(ex.Sets, item.Sets...)
		}
		if _, err := d.SaveWorkout(ctx, *in); err != nil {
			return fmt.Errorf("import workout %q: %w", w.Name, err)
		}
	}

	existing, err := d.ListTemplates(ctx)
	if err != nil {
		return fmt.Errorf("import templates: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Name] = true
	}
	for _, t := range data.Templates {
		if have[t.Name] {
			continue
		}
		exerciseIDs := make([]int64, 0, len(t.Exercises))
		for _, name := range t.Exercises {
			id, err := resolve(name)
			if err != nil {
				return fmt.Errorf("import template %q: %w", t.Name, err)
			}
			exerciseIDs = append(exerciseIDs, id)
		}
		if _, err := d.SaveTemplate(ctx, t.Name, exerciseIDs); err != nil {
			return fmt.Errorf("import template %q: %w", t.Name, err)
		}
	}

	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	// Dates as plain RFC 3339 strings and sets as compact "WxR" strings.
	yamlData := struct {
		Version    string           `yaml:"version"`
		ExportedAt string           `yaml:"exported_at"`
		Tool       string           `yaml:"tool"`
		Exercises  []ExportExercise `yaml:"custom_exercises"`
		Workouts   []yamlWorkout    `yaml:"workouts"`
		Templates  []ExportTemplate `yaml:"templates"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Exercises:  data.Exercises,
		Workouts:   make([]yamlWorkout, 0, len(data.Workouts)),
		Templates:  data.Templates,
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			SessionToken: w.SessionToken,
			Name:         w.Name,
			Date:         w.Date.Format(time.RFC3339),
		}
		for _, item := range w.Exercises {
			ye := yamlWorkoutItem{Exercise: item.Exercise}
			for _, s := range item.Sets {
				ye.Sets = append(ye.Sets, fmt.Sprintf("%sx%d", formatWeight(s.Weight), s.Reps))
			}
			yw.Exercises = append(yw.Exercises, ye)
		}
		yamlData.Workouts = append(yamlData.Workouts, yw)
	}

	return yaml.Marshal(yamlData)
}

type yamlWorkout struct {
	SessionToken string            `yaml:"session_token,omitempty"`
	Name         string            `yaml:"name"`
	Date         string            `yaml:"date"`
	Exercises    []yamlWorkoutItem `yaml:"exercises,omitempty"`
}

type yamlWorkoutItem struct {
	Exercise string   `yaml:"exercise"`
	Sets     []string `yaml:"sets,omitempty"`
}

// ExportMarkdown renders one month of workout history as Markdown.
func (d *DB) ExportMarkdown(ctx context.Context, month, year int) (string, error) {
	workouts, err := d.GetWorkoutHistory(ctx, month, year)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	sb.WriteString(fmt.Sprintf("# Workout History - %s\n\n", period.Format("January 2006")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC3339)))

	if len(workouts) == 0 {
		sb.WriteString("No workouts recorded.\n")
		return sb.String(), nil
	}

	for _, w := range workouts {
		sb.WriteString(fmt.Sprintf("## %s - %s\n\n", w.Name, w.Date.Format("2006-01-02 15:04")))
		if len(w.Exercises) == 0 {
			sb.WriteString("_No exercises recorded._\n\n")
			continue
		}
		for _, ex := range w.Exercises {
			sb.WriteString(fmt.Sprintf("### %d. %s\n\n", ex.Order, ex.Exercise.Name))
			if len(ex.Sets) == 0 {
				sb.WriteString("_No sets recorded._\n\n")
				continue
			}
			sb.WriteString("| Set | Weight | Reps |\n")
			sb.WriteString("|-----|--------|------|\n")
			for _, s := range ex.Sets {
				sb.WriteString(fmt.Sprintf("| %d | %s | %d |\n", s.SetNumber, formatWeight(s.Weight), s.Reps))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &exportData)
}

// formatWeight drops a trailing ".00" so whole weights print as integers.
func formatWeight(w float64) string {
	s := fmt.Sprintf("%.2f", w)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
