package sweeps

// OverdueResponse результат ручного запуска проверки просроченных приглашений
type OverdueResponse struct {
	Overdue []int64 `json:"overdue"`
}

// DuePaymentsResponse результат ручного запуска напоминаний о платежах
type DuePaymentsResponse struct {
	Notified []int64 `json:"notified"`
	Failed   []int64 `json:"failed"`
}

func orEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
