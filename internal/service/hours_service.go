package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/maheshrc27/devjournal/internal/repository"
	"github.com/maheshrc27/devjournal/internal/transfer"
)

type HoursService interface {
	Summary(ctx context.Context) (*transfer.HoursSummary, error)
}

type hoursService struct {
	pr            repository.PostRepository
	requiredHours float64
}

func NewHoursService(pr repository.PostRepository, requiredHours float64) HoursService {
	return &hoursService{
		pr:            pr,
		requiredHours: requiredHours,
	}
}

// Summary totals the hours logged on published posts. Entries are newest
// first and weeks, which start on Sunday in UTC, are oldest first.
func (s *hoursService) Summary(ctx context.Context) (*transfer.HoursSummary, error) {
	posts, err := s.pr.ListPublishedHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hours: %w", err)
	}

	summary := &transfer.HoursSummary{
		Entries:       make([]transfer.HoursEntry, 0, len(posts)),
		Weeks:         []transfer.WeeklyHours{},
		TotalRequired: s.requiredHours,
	}

	weeks := map[string]*transfer.WeeklyHours{}
	for _, p := range posts {
		summary.Entries = append(summary.Entries, transfer.HoursEntry{Date: p.PublishDate, Hours: p.Hours})
		summary.HoursCompleted += p.Hours

		start := startOfWeek(p.PublishDate)
		key := start.Format("2006-01-02")
		week, ok := weeks[key]
		if !ok {
			week = &transfer.WeeklyHours{
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 6),
			}
			weeks[key] = week
		}
		week.TotalHours += p.Hours
		week.Entries++
	}

	for _, w := range weeks {
		summary.Weeks = append(summary.Weeks, *w)
	}
	sort.Slice(summary.Weeks, func(i, j int) bool {
		return summary.Weeks[i].StartDate.Before(summary.Weeks[j].StartDate)
	})

	summary.HoursRemaining = math.Max(0, s.requiredHours-summary.HoursCompleted)
	if s.requiredHours > 0 {
		percent := math.Round(summary.HoursCompleted / s.requiredHours * 100)
		summary.CompletionPercent = int(math.Min(percent, 100))
	}
	return summary, nil
}
