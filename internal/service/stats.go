package service

import (
	"sort"

	"github.com/EmilioNacato/DashboardProcesador/internal/model"
	"github.com/EmilioNacato/DashboardProcesador/internal/normalize"
)

// Stats summarizes a fetched transaction set for the dashboard cards.
// CompletedAmount sums completed transactions only; uncompleted amounts are
// not realized funds.
type Stats struct {
	Total           int     `json:"totalTransactions"`
	Completed       int     `json:"completed"`
	Pending         int     `json:"pending"`
	Failed          int     `json:"failed"`
	CompletedAmount float64 `json:"completedAmount"`
}

// AggregateStats classifies each transaction by canonical status family:
// failed covers ERROR, REJECTED and FRAUD. States outside the three families
// (RECEIVED, the validation and movement states) count toward the total only.
func AggregateStats(txns []model.Transaction) Stats {
	st := Stats{Total: len(txns)}
	for _, t := range txns {
		switch t.Status {
		case normalize.StatusCompleted:
			st.Completed++
			st.CompletedAmount += t.Amount
		case normalize.StatusPending:
			st.Pending++
		case normalize.StatusError, normalize.StatusRejected, normalize.StatusFraud:
			st.Failed++
		}
	}
	return st
}

// DayBucket is one chart column: per-calendar-day counts.
type DayBucket struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Failed    int    `json:"failed"`
}

// DailySeries groups transactions by creation day for the dashboard chart,
// sorted by date, labels as DD/MM. Anything neither completed nor pending
// lands in the failed column. Transactions whose creation date could not be
// parsed are skipped.
func DailySeries(txns []model.Transaction) []DayBucket {
	buckets := make(map[string]*DayBucket)
	for _, t := range txns {
		if t.CreatedAtTime.IsZero() {
			continue
		}
		key := t.CreatedAtTime.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &DayBucket{Date: key, Label: t.CreatedAtTime.Format("02/01")}
			buckets[key] = b
		}
		switch t.Status {
		case normalize.StatusCompleted:
			b.Completed++
		case normalize.StatusPending:
			b.Pending++
		default:
			b.Failed++
		}
	}

	out := make([]DayBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
