package models

// Module is one unit of workshop content.
type Module struct {
	ID        int      `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Completed bool     `json:"completed" yaml:"completed"`
	Current   bool     `json:"current" yaml:"current"`
	Duration  string   `json:"duration" yaml:"duration"`
	Materials []string `json:"materials" yaml:"materials"`
	Progress  int      `json:"progress" yaml:"progress"`
}

// RemainingMinutes estimates the time left at two percent per minute.
func (m Module) RemainingMinutes() int {
	left := MaxProgress - m.Progress
	if left <= 0 {
		return 0
	}
	return (left + 1) / 2
}
