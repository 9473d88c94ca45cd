package models

// View names one of the mutually exclusive top-level dashboard sections.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewRegistration View = "registration"
	ViewContent      View = "content"
	ViewTracking     View = "tracking"
	ViewFeedback     View = "feedback"
	ViewCertificate  View = "certificate"
)

// Views lists every known view in navigation order.
func Views() []View {
	return []View{ViewDashboard, ViewRegistration, ViewContent, ViewTracking, ViewFeedback, ViewCertificate}
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	for _, known := range Views() {
		if v == known {
			return true
		}
	}
	return false
}

// Workshop describes the live session shown in the dashboard header.
type Workshop struct {
	Title      string `json:"title" yaml:"title"`
	Instructor string `json:"instructor" yaml:"instructor"`
	Duration   string `json:"duration" yaml:"duration"`
	Attendees  int    `json:"attendees" yaml:"attendees"`
	Status     string `json:"status" yaml:"status"`
}

// LiveState is the mutable workshop data shared by the simulation and the views.
type LiveState struct {
	LiveCount    int
	Participants []Participant
	Modules      []Module
	Activities   []Activity
	Summary      []string
}

// Clone returns a deep copy that shares no slices with s.
func (s LiveState) Clone() LiveState {
	out := LiveState{LiveCount: s.LiveCount}
	out.Participants = append([]Participant(nil), s.Participants...)
	out.Modules = make([]Module, len(s.Modules))
	for i, m := range s.Modules {
		m.Materials = append([]string(nil), m.Materials...)
		out.Modules[i] = m
	}
	out.Activities = append([]Activity(nil), s.Activities...)
	out.Summary = append([]string(nil), s.Summary...)
	return out
}

// CurrentModule returns the module marked current, if any.
func (s LiveState) CurrentModule() (Module, bool) {
	for _, m := range s.Modules {
		if m.Current {
			return m, true
		}
	}
	return Module{}, false
}

// Snapshot is a consistent copy of everything a view render needs.
type Snapshot struct {
	Workshop     Workshop
	State        LiveState
	Registration RegistrationState
	CurrentView  View
}
