package db

import (
	"fmt"
	"log"
	"sort"
	"time"

	"paytrack/internal/constants"
	"paytrack/internal/models"
)

// Analytics are recomputed from the live tables on every call; the dataset is
// a single farm's books, so full scans stay cheap and the figures can never
// go stale the way maintained counters would.

// BuildSummary assembles the dashboard rollup.
func BuildSummary(now time.Time) (models.Summary, error) {
	var s models.Summary

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	err := DB.QueryRow(`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM workers`).
		Scan(&s.TotalWorkers, &s.ActiveWorkers)
	if err != nil {
		log.Printf("BuildSummary: worker counts failed: %v", err)
		return s, err
	}

	err = DB.QueryRow(`
        SELECT COALESCE(SUM(amount), 0),
               COALESCE(SUM(amount) FILTER (WHERE paid_on >= $2), 0)
        FROM payments WHERE category = $1`,
		constants.PAYMENT_CATEGORY_WORKER, monthStart).
		Scan(&s.TotalWorkerPayments, &s.SalariesPaidThisMonth)
	if err != nil {
		log.Printf("BuildSummary: payment totals failed: %v", err)
		return s, err
	}

	err = DB.QueryRow(`
        SELECT COUNT(*), COALESCE(SUM(total_cost), 0), COALESCE(SUM(amount_received), 0), COALESCE(SUM(amount_pending), 0)
        FROM cultivations`).
		Scan(&s.CultivationCount, &s.CultivationTotalCost, &s.CultivationReceived, &s.CultivationPending)
	if err != nil {
		log.Printf("BuildSummary: cultivation totals failed: %v", err)
		return s, err
	}

	err = DB.QueryRow(`
        SELECT COALESCE(SUM(total_cost) FILTER (WHERE property_type = $1), 0),
               COALESCE(SUM(total_cost) FILTER (WHERE property_type = $2), 0),
               COALESCE(SUM(amount_pending), 0)
        FROM properties`,
		constants.PROPERTY_TYPE_BUY, constants.PROPERTY_TYPE_SELL).
		Scan(&s.PropertyBuyTotal, &s.PropertySellTotal, &s.PropertyPending)
	if err != nil {
		log.Printf("BuildSummary: property totals failed: %v", err)
		return s, err
	}

	err = DB.QueryRow(`SELECT COUNT(*), COALESCE(SUM(total_cost), 0) FROM meel_entries`).
		Scan(&s.MeelEntryCount, &s.MeelTradeVolume)
	if err != nil {
		log.Printf("BuildSummary: meel totals failed: %v", err)
		return s, err
	}

	err = DB.QueryRow(`SELECT COUNT(*) FROM attendance WHERE attended_on = $1`, today).
		Scan(&s.AttendanceRecordedToday)
	if err != nil {
		log.Printf("BuildSummary: attendance count failed: %v", err)
		return s, err
	}

	return s, nil
}

// BuildCropRollups groups cultivations by crop name with each crop's share of
// the overall cost. Sorted by total cost, largest first.
func BuildCropRollups() ([]models.CropRollup, error) {
	rows, err := DB.Query(`
        SELECT crop_name, COUNT(*), COALESCE(SUM(total_cost), 0),
               COALESCE(SUM(amount_received), 0), COALESCE(SUM(amount_pending), 0)
        FROM cultivations
        GROUP BY crop_name`)
	if err != nil {
		log.Printf("BuildCropRollups: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	rollups := []models.CropRollup{}
	var grandTotal float64
	for rows.Next() {
		var r models.CropRollup
		if err := rows.Scan(&r.CropName, &r.Count, &r.TotalCost, &r.AmountReceived, &r.AmountPending); err != nil {
			return nil, err
		}
		grandTotal += r.TotalCost
		rollups = append(rollups, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if grandTotal > 0 {
		for i := range rollups {
			rollups[i].SharePercent = rollups[i].TotalCost / grandTotal * 100
		}
	}
	sort.Slice(rollups, func(i, j int) bool { return rollups[i].TotalCost > rollups[j].TotalCost })
	return rollups, nil
}

// attendanceRollupQuery builds the per-worker status-count query. The window
// bounds extend the join condition rather than a WHERE clause, so workers
// with no records in the window still appear with zero counts.
func attendanceRollupQuery(from, to time.Time) (string, []interface{}) {
	query := `
        SELECT w.id, w.name,
               COUNT(a.id) FILTER (WHERE a.status = $1),
               COUNT(a.id) FILTER (WHERE a.status = $2),
               COUNT(a.id) FILTER (WHERE a.status = $3),
               COUNT(a.id) FILTER (WHERE a.status = $4)
        FROM workers w
        LEFT JOIN attendance a ON a.worker_id = w.id`
	args := []interface{}{constants.ATTENDANCE_PRESENT, constants.ATTENDANCE_ABSENT,
		constants.ATTENDANCE_HALF_DAY, constants.ATTENDANCE_LEAVE}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(` AND a.attended_on >= $%d`, len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(` AND a.attended_on <= $%d`, len(args))
	}
	query += ` GROUP BY w.id, w.name ORDER BY w.name`
	return query, args
}

// BuildAttendanceRollups counts each worker's attendance records in the
// window. Zero from/to leaves that end of the window open.
func BuildAttendanceRollups(from, to time.Time) ([]models.WorkerAttendanceRollup, error) {
	query, args := attendanceRollupQuery(from, to)
	rows, err := DB.Query(query, args...)
	if err != nil {
		log.Printf("BuildAttendanceRollups: query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	rollups := []models.WorkerAttendanceRollup{}
	for rows.Next() {
		var r models.WorkerAttendanceRollup
		if err := rows.Scan(&r.WorkerID, &r.WorkerName, &r.PresentDays, &r.AbsentDays, &r.HalfDays, &r.LeaveDays); err != nil {
			return nil, err
		}
		r.WorkingDays = float64(r.PresentDays) + 0.5*float64(r.HalfDays)
		recorded := r.PresentDays + r.AbsentDays + r.HalfDays + r.LeaveDays
		if recorded > 0 {
			r.AttendancePercent = r.WorkingDays / float64(recorded) * 100
		}
		rollups = append(rollups, r)
	}
	return rollups, rows.Err()
}

// BuildPartnerRollups aggregates each partner's contributions across
// partnered Meel trades.
func BuildPartnerRollups() ([]models.PartnerRollup, error) {
	entries, err := ListMeel("")
	if err != nil {
		return nil, err
	}

	byName := map[string]*models.PartnerRollup{}
	var grandTotal float64
	for _, entry := range entries {
		for _, partner := range entry.Partners {
			r, ok := byName[partner.Name]
			if !ok {
				r = &models.PartnerRollup{PartnerName: partner.Name}
				byName[partner.Name] = r
			}
			r.Trades++
			r.TotalContribution += partner.Contribution
			grandTotal += partner.Contribution
		}
	}

	rollups := []models.PartnerRollup{}
	for _, r := range byName {
		if grandTotal > 0 {
			r.SharePercent = r.TotalContribution / grandTotal * 100
		}
		rollups = append(rollups, *r)
	}
	sort.Slice(rollups, func(i, j int) bool { return rollups[i].TotalContribution > rollups[j].TotalContribution })
	return rollups, nil
}
