package check_due_payments

// Name имя задачи для планировщика, блокировки и метрик
const Name = "due_payments"

// Response результат прогона
type Response struct {
	Notified []int64 // ID платежей, по которым ушло напоминание
	Failed   []int64 // ID платежей, которые будут повторены следующим прогоном
}
