package contest

// Status is the judge verdict attached to a submission. Only Accepted has a
// scoring effect; every other verdict counts as a wrong attempt.
type Status string

const (
	Accepted        Status = "Accepted"
	WrongAnswer     Status = "Wrong_Answer"
	RuntimeError    Status = "Runtime_Error"
	TimeLimitExceed Status = "Time_Limit_Exceed"
)

// Any is the wildcard filter value for submission queries.
const Any = "ALL"

func (s Status) Accepted() bool {
	return s == Accepted
}

type Submission struct {
	Team    string
	Problem string
	Status  Status
	Minute  int
}

func (s Submission) matches(problem, status string) bool {
	if problem != Any && s.Problem != problem {
		return false
	}
	if status != Any && string(s.Status) != status {
		return false
	}
	return true
}
