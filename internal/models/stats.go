package models

// Summary is the dashboard rollup returned by /api/analytics/summary.
// Every figure is recomputed from the full dataset on each call.
type Summary struct {
	TotalWorkers            int     `json:"totalWorkers"`
	ActiveWorkers           int     `json:"activeWorkers"`
	SalariesPaidThisMonth   float64 `json:"salariesPaidThisMonth"`
	TotalWorkerPayments     float64 `json:"totalWorkerPayments"`
	CultivationCount        int     `json:"cultivationCount"`
	CultivationTotalCost    float64 `json:"cultivationTotalCost"`
	CultivationReceived     float64 `json:"cultivationReceived"`
	CultivationPending      float64 `json:"cultivationPending"`
	PropertyBuyTotal        float64 `json:"propertyBuyTotal"`
	PropertySellTotal       float64 `json:"propertySellTotal"`
	PropertyPending         float64 `json:"propertyPending"`
	MeelEntryCount          int     `json:"meelEntryCount"`
	MeelTradeVolume         float64 `json:"meelTradeVolume"`
	AttendanceRecordedToday int     `json:"attendanceRecordedToday"`
}

// CropRollup is one group in the per-crop cultivation breakdown.
type CropRollup struct {
	CropName       string  `json:"cropName"`
	Count          int     `json:"count"`
	TotalCost      float64 `json:"totalCost"`
	AmountReceived float64 `json:"amountReceived"`
	AmountPending  float64 `json:"amountPending"`
	SharePercent   float64 `json:"sharePercent"`
}

// WorkerAttendanceRollup is one worker's attendance counts over a window.
type WorkerAttendanceRollup struct {
	WorkerID          int64   `json:"workerId"`
	WorkerName        string  `json:"workerName"`
	PresentDays       int     `json:"presentDays"`
	AbsentDays        int     `json:"absentDays"`
	HalfDays          int     `json:"halfDays"`
	LeaveDays         int     `json:"leaveDays"`
	WorkingDays       float64 `json:"workingDays"`
	AttendancePercent float64 `json:"attendancePercent"`
}

// PartnerRollup is one partner's aggregated share across Meel trades.
type PartnerRollup struct {
	PartnerName       string  `json:"partnerName"`
	Trades            int     `json:"trades"`
	TotalContribution float64 `json:"totalContribution"`
	SharePercent      float64 `json:"sharePercent"`
}
