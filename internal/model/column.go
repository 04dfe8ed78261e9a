package model

// ColumnID identifies the column a card is stored in. Stored values are
// always one of the six genius columns, or the draft/archive bins — never
// a stage id. Stages exist only as a view-time grouping.
type ColumnID string

const (
	ColumnWonder      ColumnID = "wonder"
	ColumnInvention   ColumnID = "invention"
	ColumnDiscernment ColumnID = "discernment"
	ColumnGalvanizing ColumnID = "galvanizing"
	ColumnEnablement  ColumnID = "enablement"
	ColumnTenacity    ColumnID = "tenacity"

	// Out-of-flow bins. Cards dragged here leave the column grid entirely
	// and come back only through an explicit restore.
	ColumnDraft   ColumnID = "draft"
	ColumnArchive ColumnID = "archive"
)

// DefaultColumn is where restored draft/archive cards land.
const DefaultColumn = ColumnWonder

// StageID identifies one of the three coarse view-mode groups.
type StageID string

const (
	StageIdeation       StageID = "ideation"
	StageActivation     StageID = "activation"
	StageImplementation StageID = "implementation"
)

// Column describes a genius column for rendering.
type Column struct {
	ID          ColumnID
	Title       string
	Description string
}

// Stage describes a stage group and the exact pair of genius columns it
// aggregates. The pairs are disjoint, so stage membership never counts a
// card twice.
type Stage struct {
	ID          StageID
	Title       string
	Description string
	Geniuses    [2]ColumnID
}

// GeniusColumns lists the six columns in board order.
var GeniusColumns = []Column{
	{ID: ColumnWonder, Title: "Wonder", Description: "Pondering and questioning"},
	{ID: ColumnInvention, Title: "Invention", Description: "Creating and brainstorming"},
	{ID: ColumnDiscernment, Title: "Discernment", Description: "Evaluating and critiquing"},
	{ID: ColumnGalvanizing, Title: "Galvanizing", Description: "Rallying and inspiring"},
	{ID: ColumnEnablement, Title: "Enablement", Description: "Supporting and assisting"},
	{ID: ColumnTenacity, Title: "Tenacity", Description: "Pushing to the finish"},
}

// Stages lists the three stage groups in board order.
var Stages = []Stage{
	{
		ID:          StageIdeation,
		Title:       "Ideation",
		Description: "Wondering and inventing",
		Geniuses:    [2]ColumnID{ColumnWonder, ColumnInvention},
	},
	{
		ID:          StageActivation,
		Title:       "Activation",
		Description: "Discerning and galvanizing",
		Geniuses:    [2]ColumnID{ColumnDiscernment, ColumnGalvanizing},
	},
	{
		ID:          StageImplementation,
		Title:       "Implementation",
		Description: "Enabling and persevering",
		Geniuses:    [2]ColumnID{ColumnEnablement, ColumnTenacity},
	},
}

// IsGenius reports whether id is one of the six genius columns.
func (id ColumnID) IsGenius() bool {
	switch id {
	case ColumnWonder, ColumnInvention, ColumnDiscernment,
		ColumnGalvanizing, ColumnEnablement, ColumnTenacity:
		return true
	}
	return false
}

// IsBin reports whether id is one of the draft/archive bins.
func (id ColumnID) IsBin() bool {
	return id == ColumnDraft || id == ColumnArchive
}

// StageFor returns the stage containing the given genius column, or nil
// for bin columns.
func StageFor(id ColumnID) *Stage {
	for i := range Stages {
		s := &Stages[i]
		if s.Geniuses[0] == id || s.Geniuses[1] == id {
			return s
		}
	}
	return nil
}

// StageByID looks up a stage group by its id.
func StageByID(id StageID) *Stage {
	for i := range Stages {
		if Stages[i].ID == id {
			return &Stages[i]
		}
	}
	return nil
}

// ResolveDropColumn maps a drop target to a storable column. Stage-view
// drops land in the first genius of the stage pair, since storage is
// always genius-level.
func ResolveDropColumn(target string) ColumnID {
	if s := StageByID(StageID(target)); s != nil {
		return s.Geniuses[0]
	}
	return ColumnID(target)
}
