package state

// CustomerType classifies the banking relationship of a customer
type CustomerType string

const (
	ETB CustomerType = "ETB" // existing-to-bank
	NTB CustomerType = "NTB" // new-to-bank
)

// TaskPriority is the urgency level of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// Customer is one customer record. Dates and times are kept as the strings
// the forms produce ("2006-01-02" and "15:04") so stored data stays
// compatible with exports from earlier versions of the app. An empty
// NextVisitTime means "anytime".
//
// Field order matters: CSV exports emit columns in declaration order.
type Customer struct {
	ID            string       `json:"id"`
	CustomerName  string       `json:"customerName"`
	MobileNumber  string       `json:"mobileNumber"`
	ReferenceBy   string       `json:"referenceBy"`
	Product       string       `json:"product"`
	CustomerType  CustomerType `json:"customerType"`
	Remark        string       `json:"remark"`
	NextVisitDate string       `json:"nextVisitDate"`
	NextVisitTime string       `json:"nextVisitTime"`
	CreatedAt     string       `json:"createdAt"`
}

// VisitHistory is an append-only audit record written every time a customer
// is added or updated. Name, number and remark are snapshots taken at
// logging time, not live references.
type VisitHistory struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customerId"`
	VisitDate    string `json:"visitDate"`
	Remark       string `json:"remark"`
	CustomerName string `json:"customerName"`
	MobileNumber string `json:"mobileNumber"`
}

// Task is a to-do entry. DateTime is the scheduled timestamp in RFC 3339.
type Task struct {
	ID          string       `json:"id"`
	TaskTitle   string       `json:"taskTitle"`
	Description string       `json:"description"`
	DateTime    string       `json:"dateTime"`
	Priority    TaskPriority `json:"priority"`
	IsComplete  bool         `json:"isComplete"`
	SetReminder bool         `json:"setReminder"`
}

// AppSettings is the singleton settings record. Both fields are always
// populated; defaults apply at first initialization only.
type AppSettings struct {
	UserName            string `json:"userName"`
	DefaultReminderTime string `json:"defaultReminderTime"`
}

// ToastType distinguishes success from error notifications
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
)

// Toast is a short-lived notification. Never persisted.
type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}
