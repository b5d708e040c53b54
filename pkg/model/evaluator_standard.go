package model

import (
	"log"

	"github.com/samber/lo"
)

type standardEvaluator struct {
	problem            Problem
	penalties          Penalties
	lectureClassrooms  map[uint64]bool
	practiceClassrooms map[uint64]bool
}

func NewEvaluator(problem Problem, penalties Penalties) (Evaluator, error) {
	if err := problem.Validate(); err != nil {
		return nil, err
	} else if err := penalties.Validate(); err != nil {
		return nil, err
	}

	toSet := func(classroom uint64) (uint64, bool) { return classroom, true }
	return &standardEvaluator{
		problem:            problem,
		penalties:          penalties,
		lectureClassrooms:  lo.SliceToMap(problem.LectureClassrooms, toSet),
		practiceClassrooms: lo.SliceToMap(problem.PracticeClassrooms, toSet),
	}, nil
}

func (evaluator *standardEvaluator) EvaluateBits(bits []uint8) (uint64, Violations, error) {
	timetable, err := evaluator.problem.Decode(bits)
	if err != nil {
		return 0, Violations{}, err
	}
	cost, violations := evaluator.Evaluate(timetable)
	return cost, violations, nil
}

func (evaluator *standardEvaluator) Evaluate(timetable Timetable) (uint64, Violations) {
	if err := evaluator.problem.conforms(timetable); err != nil {
		log.Panicf("cannot evaluate timetable: %v", err)
	}

	var violations Violations
	for _, classes := range evaluator.problem.Simultaneous(timetable) {
		evaluator.evaluateTimeslot(classes, &violations)
	}
	return violations.Cost(evaluator.penalties), violations
}

func (evaluator *standardEvaluator) evaluateTimeslot(classes []ClassTuple, violations *Violations) {
	attendance := make(map[ClassTuple]uint64, len(classes)) // Groups attending each distinct class
	accepted := make([]ClassTuple, 0, len(classes))         // Distinct classes in arrival order

	for _, class := range classes {
		if verdict := evaluator.inspect(class); verdict != Distinct {
			violations.record(verdict)
			continue
		}

		// Another group joins an already scheduled class
		if count, ok := attendance[class]; ok {
			if count < evaluator.problem.Capacity(class.Type) {
				attendance[class]++
			} else {
				violations.GroupLimit++
			}
			continue
		}

		// Every pair of distinct classes is compared exactly once
		for _, other := range accepted {
			violations.record(Compare(other, class))
		}
		attendance[class] = 1
		accepted = append(accepted, class)
	}
}

// Checks the constraints a class tuple must satisfy on its own
func (evaluator *standardEvaluator) inspect(class ClassTuple) Verdict {
	if class.Classroom == 0 || class.Teacher == 0 {
		return ZeroMembers
	} else if evaluator.lectureClassrooms[class.Classroom] && class.Type != Lecture {
		return TypeMismatch
	} else if evaluator.practiceClassrooms[class.Classroom] && class.Type != Practice {
		return TypeMismatch
	}
	return Distinct
}
