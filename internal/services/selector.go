package services

import (
	"time"

	"github.com/finsight-labs/disclosureflow/internal/models"
)

// SelectDocuments filters a company's events by date range and expands the
// requested categories into document references. Both range bounds are
// inclusive at calendar-date precision. Output order is event order as
// fetched, then category order as requested; this is also the processing
// order for the run.
func SelectDocuments(company *models.Company, start, end time.Time, categories []models.Category) []models.DocumentRef {
	var refs []models.DocumentRef
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	for _, event := range company.Events {
		day := truncateToDay(event.Date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		for _, cat := range categories {
			url := event.Documents[cat]
			if url == "" {
				continue
			}
			refs = append(refs, models.DocumentRef{
				CompanyName: company.DisplayName,
				EventTitle:  event.Title,
				EventDate:   day,
				Category:    cat,
				URL:         url,
			})
		}
	}
	return refs
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
