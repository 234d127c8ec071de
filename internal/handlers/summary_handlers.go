package handlers

import (
	"fmt"
	"log"
	"time"

	"paytrack/internal/db"
	"paytrack/internal/utils"
)

// Read-only bot commands: compact Markdown listings of what the books hold.

const listLimit = 15

func (bh *BotHandler) handleWorkersList(chatID int64) {
	workers, err := db.ListWorkers(nil)
	if err != nil {
		log.Printf("handleWorkersList: query failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Could not load workers right now.")
		return
	}
	if len(workers) == 0 {
		bh.sendMessage(chatID, "No workers yet. Add one with /addworker.")
		return
	}

	reply := fmt.Sprintf("*Workers (%d)*\n", len(workers))
	for i, w := range workers {
		if i == listLimit {
			reply += fmt.Sprintf("…and %d more.\n", len(workers)-listLimit)
			break
		}
		status := ""
		if !w.IsActive {
			status = " (inactive)"
		}
		reply += fmt.Sprintf("• %s%s — %s/month, %.1f working days\n",
			w.Name, status, utils.FormatMoney(w.MonthlySalary), w.RunningTotalWorkingDays)
	}
	bh.sendMarkdown(chatID, reply)
}

func (bh *BotHandler) handleAttendanceList(chatID int64) {
	// Last 7 days across all workers.
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	records, err := db.ListAttendance(0, from, time.Time{})
	if err != nil {
		log.Printf("handleAttendanceList: query failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Could not load attendance right now.")
		return
	}
	if len(records) == 0 {
		bh.sendMessage(chatID, "No attendance in the last 7 days. Mark some with /addattendance.")
		return
	}

	reply := "*Attendance, last 7 days*\n"
	for i, a := range records {
		if i == listLimit {
			reply += fmt.Sprintf("…and %d more.\n", len(records)-listLimit)
			break
		}
		reply += fmt.Sprintf("• %s — %s: %s\n",
			utils.FormatDateForDisplay(a.AttendedOn), a.WorkerName, utils.TitleCaseStatus(a.Status))
	}
	bh.sendMarkdown(chatID, reply)
}

func (bh *BotHandler) handleAttendanceSummary(chatID int64) {
	// Current calendar month.
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	rollups, err := db.BuildAttendanceRollups(from, time.Time{})
	if err != nil {
		log.Printf("handleAttendanceSummary: query failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Could not build the attendance summary right now.")
		return
	}
	if len(rollups) == 0 {
		bh.sendMessage(chatID, "No workers yet. Add one with /addworker.")
		return
	}

	reply := "*Attendance this month*\n"
	for _, r := range rollups {
		reply += fmt.Sprintf("• %s — %dP / %dA / %dH / %dL (%.1f working days)\n",
			r.WorkerName, r.PresentDays, r.AbsentDays, r.HalfDays, r.LeaveDays, r.WorkingDays)
	}
	bh.sendMarkdown(chatID, reply)
}

func (bh *BotHandler) handleCropsList(chatID int64) {
	cultivations, err := db.ListCultivations(0, "")
	if err != nil {
		log.Printf("handleCropsList: query failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Could not load cultivations right now.")
		return
	}
	if len(cultivations) == 0 {
		bh.sendMessage(chatID, "No cultivations yet. Add one with /addcrop.")
		return
	}

	reply := fmt.Sprintf("*Cultivations (%d)*\n", len(cultivations))
	for i, c := range cultivations {
		if i == listLimit {
			reply += fmt.Sprintf("…and %d more.\n", len(cultivations)-listLimit)
			break
		}
		buyer := ""
		if c.PersonName != "" {
			buyer = " → " + c.PersonName
		}
		reply += fmt.Sprintf("• %s%s — %.2f bigha, total %s, pending %s\n",
			c.CropName, buyer, c.AreaBigha,
			utils.FormatMoney(c.TotalCost), utils.FormatMoney(c.AmountPending))
	}
	bh.sendMarkdown(chatID, reply)
}

func (bh *BotHandler) handlePropertiesList(chatID int64) {
	properties, err := db.ListProperties("")
	if err != nil {
		log.Printf("handlePropertiesList: query failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Could not load property deals right now.")
		return
	}
	if len(properties) == 0 {
		bh.sendMessage(chatID, "No property deals yet. Add one with /addproperty.")
		return
	}

	reply := fmt.Sprintf("*Property deals (%d)*\n", len(properties))
	for i, p := range properties {
		if i == listLimit {
			reply += fmt.Sprintf("…and %d more.\n", len(properties)-listLimit)
			break
		}
		reply += fmt.Sprintf("• %s on %s — total %s, pending %s\n",
			utils.TitleCaseStatus(p.PropertyType), utils.FormatDateForDisplay(p.TransactedOn),
			utils.FormatMoney(p.TotalCost), utils.FormatMoney(p.AmountPending))
	}
	bh.sendMarkdown(chatID, reply)
}

func (bh *BotHandler) handleSummary(chatID int64) {
	summary, err := db.BuildSummary(time.Now())
	if err != nil {
		log.Printf("handleSummary: query failed for chatID %d: %v", chatID, err)
		bh.sendMessage(chatID, "❌ Could not build the summary right now.")
		return
	}

	reply := "*PayTrack summary*\n" +
		fmt.Sprintf("Workers: %d (%d active)\n", summary.TotalWorkers, summary.ActiveWorkers) +
		fmt.Sprintf("Salaries paid this month: %s\n", utils.FormatMoney(summary.SalariesPaidThisMonth)) +
		fmt.Sprintf("Cultivations: %d, total %s, pending %s\n",
			summary.CultivationCount,
			utils.FormatMoney(summary.CultivationTotalCost),
			utils.FormatMoney(summary.CultivationPending)) +
		fmt.Sprintf("Property: bought %s, sold %s\n",
			utils.FormatMoney(summary.PropertyBuyTotal),
			utils.FormatMoney(summary.PropertySellTotal)) +
		fmt.Sprintf("Meel trades: %d, volume %s\n",
			summary.MeelEntryCount, utils.FormatMoney(summary.MeelTradeVolume)) +
		fmt.Sprintf("Attendance marked today: %d", summary.AttendanceRecordedToday)
	bh.sendMarkdown(chatID, reply)
}
