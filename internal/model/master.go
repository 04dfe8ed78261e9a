package model

// AllProjectsBoard is the query-only board filter meaning "no filter".
// It is never stored as a real board membership on a card.
const AllProjectsBoard = "All Projects"

// GeniusAssessment is a team member's rating for a single genius column.
type GeniusAssessment string

const (
	AssessmentGenius      GeniusAssessment = "genius"
	AssessmentCompetency  GeniusAssessment = "competency"
	AssessmentFrustration GeniusAssessment = "frustration"
)

// Team is a reference-data team entry.
type Team struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Employee is a reference-data person entry, with optional per-genius
// assessments feeding the board's team statistics row.
type Employee struct {
	ID          int                           `json:"id"`
	Name        string                        `json:"name"`
	Email       string                        `json:"email,omitempty"`
	Role        string                        `json:"role,omitempty"`
	Assessments map[ColumnID]GeniusAssessment `json:"assessments,omitempty"`
}

// BoardTag is a reference-data board entry usable as a card filter tag.
type BoardTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProjectStatus is a reference-data status label.
type ProjectStatus struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectPriority is a reference-data priority label.
type ProjectPriority struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectCategory is a reference-data category label.
type ProjectCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MasterData bundles every reference collection the selectors need,
// fetched in a single call.
type MasterData struct {
	Teams      []Team            `json:"teams"`
	Employees  []Employee        `json:"employees"`
	Boards     []BoardTag        `json:"boards"`
	Statuses   []ProjectStatus   `json:"statuses"`
	Priorities []ProjectPriority `json:"priorities"`
	Categories []ProjectCategory `json:"categories"`
}

// EmployeeByName resolves an employee by display name. The second return
// is false when no employee matches.
func (m *MasterData) EmployeeByName(name string) (Employee, bool) {
	for _, e := range m.Employees {
		if e.Name == name {
			return e, true
		}
	}
	return Employee{}, false
}

// BoardNames returns the board names excluding the All-Projects sentinel.
func (m *MasterData) BoardNames() []string {
	names := make([]string, 0, len(m.Boards))
	for _, b := range m.Boards {
		if b.Name == AllProjectsBoard {
			continue
		}
		names = append(names, b.Name)
	}
	return names
}
