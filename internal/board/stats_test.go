package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/genius-board/internal/model"
)

func testTeam() []model.Employee {
	return []model.Employee{
		{ID: 1, Name: "Ann", Assessments: map[model.ColumnID]model.GeniusAssessment{
			model.ColumnWonder:    model.AssessmentGenius,
			model.ColumnInvention: model.AssessmentCompetency,
			model.ColumnTenacity:  model.AssessmentFrustration,
		}},
		{ID: 2, Name: "Ben", Assessments: map[model.ColumnID]model.GeniusAssessment{
			model.ColumnWonder:    model.AssessmentGenius,
			model.ColumnInvention: model.AssessmentFrustration,
		}},
		{ID: 3, Name: "Cam", Assessments: nil},
	}
}

func TestCountsForGenius(t *testing.T) {
	counts := CountsForGenius(testTeam(), model.ColumnWonder)
	assert.Equal(t, TeamCounts{Genius: 2}, counts)

	counts = CountsForGenius(testTeam(), model.ColumnInvention)
	assert.Equal(t, TeamCounts{Competency: 1, Frustration: 1}, counts)

	// No assessments at all for this column.
	counts = CountsForGenius(testTeam(), model.ColumnEnablement)
	assert.Equal(t, TeamCounts{}, counts)
}

func TestCountsForStage_SumsThePair(t *testing.T) {
	stage := model.Stages[0] // wonder + invention
	counts := CountsForStage(testTeam(), stage)
	assert.Equal(t, TeamCounts{Genius: 2, Competency: 1, Frustration: 1}, counts)
}

func TestCountsForTarget(t *testing.T) {
	got := CountsForTarget(testTeam(), ViewGenius, "wonder")
	assert.Equal(t, TeamCounts{Genius: 2}, got)

	got = CountsForTarget(testTeam(), ViewStage, "ideation")
	assert.Equal(t, TeamCounts{Genius: 2, Competency: 1, Frustration: 1}, got)

	got = CountsForTarget(testTeam(), ViewStage, "bogus")
	assert.Equal(t, TeamCounts{}, got)
}
