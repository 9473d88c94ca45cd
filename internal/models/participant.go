package models

// ParticipantStatus is the presence state of an attendee.
type ParticipantStatus string

const (
	ParticipantActive ParticipantStatus = "active"
	ParticipantIdle   ParticipantStatus = "idle"
)

// Toggle flips between active and idle.
func (s ParticipantStatus) Toggle() ParticipantStatus {
	if s == ParticipantActive {
		return ParticipantIdle
	}
	return ParticipantActive
}

// MaxProgress caps participant and module progress percentages.
const MaxProgress = 100

// Participant is an attendee tracked by the live roster.
type Participant struct {
	ID       int               `json:"id" yaml:"id"`
	Name     string            `json:"name" yaml:"name"`
	Status   ParticipantStatus `json:"status" yaml:"status"`
	Progress int               `json:"progress" yaml:"progress"`
	JoinTime string            `json:"join_time" yaml:"joinTime"`
	Location string            `json:"location" yaml:"location"`
}
