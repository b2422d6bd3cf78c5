package sqlstore

import (
	"context"
	"database/sql"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/calendar"
)

type CalendarRepository struct {
	q        querier
	contacts *ContactRepository
}

func (r *CalendarRepository) Interviews(ctx context.Context) ([]calendar.InterviewEntry, error) {
	query := `
		SELECT ` + interviewColumns + `, j.id, j.title, c.name
		FROM interviews i
		JOIN application_processes ap ON ap.id = i.application_process_id
		JOIN job_openings j ON j.id = ap.job_opening_id
		JOIN companies c ON c.id = j.company_id
		ORDER BY i.scheduled_at, i.id
	`
	rows, err := r.q.query(ctx, query)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list calendar interviews", err)
	}
	entries := make([]calendar.InterviewEntry, 0)
	jobIDs := make([]int64, 0)
	seen := make(map[int64]bool)
	for rows.Next() {
		var entry calendar.InterviewEntry
		if err := scanInterview(rows, &entry.Interview, &entry.JobOpeningID, &entry.JobTitle, &entry.CompanyName); err != nil {
			rows.Close()
			return nil, common.NewError(common.CodeInternal, "failed to scan calendar interview", err)
		}
		if !seen[entry.JobOpeningID] {
			seen[entry.JobOpeningID] = true
			jobIDs = append(jobIDs, entry.JobOpeningID)
		}
		entries = append(entries, entry)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list calendar interviews", err)
	}

	contacts, err := r.contacts.ListByJobOpenings(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Contacts = contacts[entries[i].JobOpeningID]
	}
	return entries, nil
}

func (r *CalendarRepository) Tasks(ctx context.Context, userID int64) ([]calendar.TaskEntry, error) {
	query := `
		SELECT ` + taskColumns + `, j.title, c.name
		FROM tasks t
		LEFT JOIN application_processes ap ON ap.id = t.application_process_id
		LEFT JOIN job_openings j ON j.id = ap.job_opening_id
		LEFT JOIN companies c ON c.id = j.company_id
		WHERE t.user_id = $1 AND t.due_date IS NOT NULL
		ORDER BY t.due_date, t.id
	`
	rows, err := r.q.query(ctx, query, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list calendar tasks", err)
	}
	defer rows.Close()
	entries := make([]calendar.TaskEntry, 0)
	for rows.Next() {
		var entry calendar.TaskEntry
		var jobTitle, companyName sql.NullString
		if err := scanTask(rows, &entry.Task, &jobTitle, &companyName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan calendar task", err)
		}
		entry.JobTitle = jobTitle.String
		entry.CompanyName = companyName.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list calendar tasks", err)
	}
	return entries, nil
}
