package dao

// VerificationJob is the queue message asking a worker to verify one headshot
// of a stored activity interval.
type VerificationJob struct {
	IntervalId    int    `json:"interval_id"`
	HeadshotIndex int    `json:"headshot_index"`
	EmployeeId    string `json:"employee_id"`
	Url           string `json:"url"`
}
