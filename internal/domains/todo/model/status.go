package model

type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

var statusRank = map[Status]int{
	StatusTodo:       1,
	StatusInProgress: 2,
	StatusDone:       3,
}

var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	_, ok := statusRank[s]

	return ok
}

// Next advances along Todo -> In Progress -> Done -> Todo. Unknown values
// restart the cycle at Todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}

// Rank orders statuses for sorting. Unknown values rank 0.
func (s Status) Rank() int {
	return statusRank[s]
}

func (s Status) String() string {
	return string(s)
}
