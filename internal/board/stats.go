package board

import "github.com/nhle/genius-board/internal/model"

// TeamCounts aggregates how many team members rate a column (or stage)
// as a genius, competency, or frustration. Rendered as the footer row
// under each column.
type TeamCounts struct {
	Genius      int
	Competency  int
	Frustration int
}

// CountsForGenius tallies employee assessments for one genius column.
func CountsForGenius(employees []model.Employee, id model.ColumnID) TeamCounts {
	var counts TeamCounts
	for _, emp := range employees {
		switch emp.Assessments[id] {
		case model.AssessmentGenius:
			counts.Genius++
		case model.AssessmentCompetency:
			counts.Competency++
		case model.AssessmentFrustration:
			counts.Frustration++
		}
	}
	return counts
}

// CountsForStage sums the tallies of the stage's genius pair.
func CountsForStage(employees []model.Employee, stage model.Stage) TeamCounts {
	var counts TeamCounts
	for _, g := range stage.Geniuses {
		c := CountsForGenius(employees, g)
		counts.Genius += c.Genius
		counts.Competency += c.Competency
		counts.Frustration += c.Frustration
	}
	return counts
}

// CountsForTarget resolves a display-column key to its tally for the
// given view mode.
func CountsForTarget(employees []model.Employee, mode ViewMode, target string) TeamCounts {
	if mode == ViewStage {
		if s := model.StageByID(model.StageID(target)); s != nil {
			return CountsForStage(employees, *s)
		}
		return TeamCounts{}
	}
	return CountsForGenius(employees, model.ColumnID(target))
}
