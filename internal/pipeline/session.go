package pipeline

import (
	"github.com/fadilmartias/fairfound-coach/internal/model"
)

type State string

const (
	StateEmpty     State = "empty"
	StateAnalyzing State = "analyzing"
	StateReady     State = "ready"
)

// Session is the value the pipeline works on. Every transition below returns
// a new Session and leaves the receiver untouched.
type Session struct {
	ID         string                `json:"id"`
	State      State                 `json:"state"`
	Generation uint64                `json:"generation"`
	Profile    *model.Profile        `json:"profile"`
	Analysis   *model.AnalysisResult `json:"analysis"`
	Roadmap    []model.RoadmapStep   `json:"roadmap"`
}

func NewSession(id string) Session {
	return Session{
		ID:      id,
		State:   StateEmpty,
		Roadmap: model.StarterRoadmap(),
	}
}

func (s Session) clone() Session {
	out := s
	if s.Profile != nil {
		p := *s.Profile
		p.Skills = append([]string(nil), s.Profile.Skills...)
		out.Profile = &p
	}
	out.Roadmap = append([]model.RoadmapStep(nil), s.Roadmap...)
	return out
}

// Begin records a new submission. The generation counter identifies it so a
// later submission can supersede an earlier one still in flight.
func (s Session) Begin(p model.Profile) Session {
	out := s.clone()
	p.Skills = append([]string(nil), p.Skills...)
	out.Profile = &p
	out.State = StateAnalyzing
	out.Generation = s.Generation + 1
	return out
}

// Complete installs a fresh analysis. The roadmap is replaced only by a
// non-empty one.
func (s Session) Complete(a *model.AnalysisResult, roadmap []model.RoadmapStep) Session {
	out := s.clone()
	out.Analysis = a
	if len(roadmap) > 0 {
		out.Roadmap = append([]model.RoadmapStep(nil), roadmap...)
	}
	out.State = StateReady
	return out
}

// Fail ends a submission without touching analysis or roadmap. The submitted
// profile is kept.
func (s Session) Fail() Session {
	out := s.clone()
	if out.Analysis != nil {
		out.State = StateReady
	} else {
		out.State = StateEmpty
	}
	return out
}

// WithProfile replaces the profile without re-analysing.
func (s Session) WithProfile(p model.Profile) Session {
	out := s.clone()
	p.Skills = append([]string(nil), p.Skills...)
	out.Profile = &p
	return out
}

// WithStepStatus updates one roadmap step. ok is false when no step has id.
func (s Session) WithStepStatus(id string, status model.StepStatus) (Session, bool) {
	out := s.clone()
	for i := range out.Roadmap {
		if out.Roadmap[i].ID == id {
			out.Roadmap[i].Status = status
			return out, true
		}
	}
	return s, false
}
