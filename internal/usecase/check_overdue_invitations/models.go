package check_overdue_invitations

// Name имя задачи для планировщика, блокировки и метрик
const Name = "overdue_invitations"

// Response результат прогона
type Response struct {
	Overdue []int64 // ID приглашений, переведенных в overdue
}
