// ABOUTME: Parsing and formatting helpers shared by the CLI commands.
// ABOUTME: Time formats, "WxR" set specs, exercise references and column padding.
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harperreed/fitspire/internal/models"
	"github.com/harperreed/fitspire/internal/storage"
)

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

// parseWeightReps parses "100x5" (or "100X5", "62.5x8").
func parseWeightReps(s string) (models.SetInput, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return models.SetInput{}, fmt.Errorf("invalid set %q: use <weight>x<reps>", s)
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.SetInput{}, fmt.Errorf("invalid weight in %q", s)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.SetInput{}, fmt.Errorf("invalid reps in %q", s)
	}
	return models.SetInput{Weight: weight, Reps: reps}, nil
}

// parseSetSpec parses "<exercise>:<w>x<r>,<w>x<r>". The set list is
// optional, so "Leg Press" is an exercise with no sets.
func parseSetSpec(spec string) (string, []models.SetInput, error) {
	name, list, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("invalid --set %q: missing exercise", spec)
	}

	sets := []models.SetInput{}
	if strings.TrimSpace(list) == "" {
		return name, sets, nil
	}
	for _, item := range strings.Split(list, ",") {
		set, err := parseWeightReps(item)
		if err != nil {
			return "", nil, err
		}
		sets = append(sets, set)
	}
	return name, sets, nil
}

// resolveExercise accepts a catalog ID or an exercise name.
func resolveExercise(ctx context.Context, ref string) (*models.Exercise, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return repo.GetExercise(ctx, id)
	}
	e, err := repo.FindExerciseByName(ctx, ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("unknown exercise %q (see 'fitspire exercise list')", ref)
	}
	return e, err
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func formatSets(sets []models.Set) string {
	if len(sets) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(sets))
	for _, s := range sets {
		parts = append(parts, fmt.Sprintf("%sx%d", formatWeight(s.Weight), s.Reps))
	}
	return strings.Join(parts, ", ")
}

// truncate and padRight count runes so multi-byte names are never split.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
