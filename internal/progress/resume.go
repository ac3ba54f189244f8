package progress

import "liftlog/api/internal/domain"

// ResumeState is the pre-filled input grid of the execution screen. Exercises[i].Sets[j]
// lines up with the plan's exercise i, template set j.
type ResumeState struct {
	PlanID    string           `json:"planId"`
	PlanName  string           `json:"planName"`
	Exercises []ResumeExercise `json:"exercises"`
}

type ResumeExercise struct {
	ExerciseID   string             `json:"exerciseId,omitempty"`
	Name         string             `json:"name"`
	Group        string             `json:"group"`
	MuscleDetail string             `json:"muscleDetail,omitempty"`
	Sets         []domain.SetRecord `json:"sets"`
	// FromLastSession is true when at least one value came from the previous run.
	FromLastSession bool `json:"fromLastSession"`
}

// Resume seeds the execution inputs for plan from the last completed session of the same plan.
// The result always has the plan's shape: same exercises, same number of sets each. A session
// value of zero falls back to the template value for that field only. last may be nil.
func Resume(plan domain.Plan, last *domain.WorkoutSession) ResumeState {
	state := ResumeState{
		PlanID:    plan.ID.Hex(),
		PlanName:  plan.Name,
		Exercises: make([]ResumeExercise, len(plan.Exercises)),
	}

	for i, ex := range plan.Exercises {
		out := ResumeExercise{
			ExerciseID:   ex.ExerciseID,
			Name:         ex.Name,
			Group:        ex.Group,
			MuscleDetail: ex.MuscleDetail,
			Sets:         make([]domain.SetRecord, len(ex.Sets)),
		}

		var previous *domain.SessionExercise
		if last != nil {
			previous = matchSessionExercise(ex, last.Exercises)
		}

		for j, tmpl := range ex.Sets {
			seeded := tmpl
			if previous != nil && j < len(previous.Sets) {
				done := previous.Sets[j]
				if done.Reps != 0 {
					seeded.Reps = done.Reps
					out.FromLastSession = true
				}
				if done.Weight != 0 {
					seeded.Weight = done.Weight
					out.FromLastSession = true
				}
			}
			out.Sets[j] = seeded
		}
		state.Exercises[i] = out
	}
	return state
}

// matchSessionExercise finds the executed counterpart of a plan exercise. The stable exercise id
// is used when both sides have one; otherwise the first exercise with the same name wins.
func matchSessionExercise(ex domain.PlanExercise, done []domain.SessionExercise) *domain.SessionExercise {
	if ex.ExerciseID != "" {
		for i := range done {
			if done[i].ExerciseID == ex.ExerciseID {
				return &done[i]
			}
		}
	}
	for i := range done {
		if done[i].ExerciseID != "" && ex.ExerciseID != "" {
			continue
		}
		if done[i].Name == ex.Name {
			return &done[i]
		}
	}
	return nil
}
