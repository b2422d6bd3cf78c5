package app

import (
	"context"
	"sort"

	"jobtracker/internal/domain/calendar"
	"jobtracker/internal/domain/job"
	"jobtracker/internal/domain/task"
)

const (
	recentApplicationDays   = 30
	upcomingInterviewsLimit = 5
)

type Dashboard struct {
	ActiveApplicationsCount int
	IncompleteTasksCount    int
	OverdueTasksCount       int
	NeedsFollowUp           []job.Listing
	RecentApplications      []job.Listing
	UpcomingInterviews      []calendar.InterviewEntry
	OverdueTasks            []task.Task
}

type DashboardService struct {
	store Store
	clock Clock
}

func NewDashboardService(store Store, clock Clock) *DashboardService {
	return &DashboardService{store: store, clock: clock}
}

func (s *DashboardService) Overview(ctx context.Context, userID int64) (*Dashboard, error) {
	repos := s.store.Repositories()
	now := s.clock.Current()
	today := s.clock.Today()

	listings, err := repos.Jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	dashboard := &Dashboard{
		NeedsFollowUp:      []job.Listing{},
		RecentApplications: []job.Listing{},
		UpcomingInterviews: []calendar.InterviewEntry{},
		OverdueTasks:       []task.Task{},
	}
	for _, listing := range listings {
		process := listing.Process
		if process == nil {
			continue
		}
		if process.Active() {
			dashboard.ActiveApplicationsCount++
			if process.NeedsFollowUp(today) {
				dashboard.NeedsFollowUp = append(dashboard.NeedsFollowUp, listing)
			}
		}
		if process.AppliedWithin(today, recentApplicationDays) {
			dashboard.RecentApplications = append(dashboard.RecentApplications, listing)
		}
	}
	sort.SliceStable(dashboard.RecentApplications, func(i, j int) bool {
		return dashboard.RecentApplications[j].Process.AppliedOn.Before(*dashboard.RecentApplications[i].Process.AppliedOn)
	})

	interviews, err := repos.Calendar.Interviews(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range interviews {
		if !entry.Interview.Upcoming(now) {
			continue
		}
		dashboard.UpcomingInterviews = append(dashboard.UpcomingInterviews, entry)
		if len(dashboard.UpcomingInterviews) == upcomingInterviewsLimit {
			break
		}
	}

	tasks, err := repos.Tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, item := range tasks {
		if item.Completed {
			continue
		}
		dashboard.IncompleteTasksCount++
		if item.Overdue(today) {
			dashboard.OverdueTasksCount++
			dashboard.OverdueTasks = append(dashboard.OverdueTasks, item)
		}
	}
	return dashboard, nil
}
