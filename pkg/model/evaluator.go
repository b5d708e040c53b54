package model

import (
	"errors"
	"fmt"
)

var ErrInvalidPenalties = errors.New("invalid penalties")

type Evaluator interface {
	// Scores a decoded timetable. The timetable must conform to the problem
	Evaluate(timetable Timetable) (cost uint64, violations Violations)

	// Decodes and scores a candidate bit vector
	EvaluateBits(bits []uint8) (cost uint64, violations Violations, err error)
}

type Penalties struct {
	Hard uint64 `validate:"gt=0"`
	Soft uint64
}

func (penalties Penalties) Validate() error {
	if err := validate.Struct(penalties); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPenalties, err)
	}
	return nil
}

// Violations itemizes the constraint violations found in a single evaluation
type Violations struct {
	// Hard constraints
	ZeroMembers                   uint64
	ClassroomType                 uint64
	ClassroomNumberContradiction  uint64
	MultipleTeachersContradiction uint64
	ClassroomTypeContradiction    uint64
	TeacherContradiction          uint64

	// Soft constraints
	GroupLimit uint64
}

func (violations Violations) Hard() uint64 {
	return violations.ZeroMembers +
		violations.ClassroomType +
		violations.ClassroomNumberContradiction +
		violations.MultipleTeachersContradiction +
		violations.ClassroomTypeContradiction +
		violations.TeacherContradiction
}

func (violations Violations) Soft() uint64 {
	return violations.GroupLimit
}

func (violations Violations) Cost(penalties Penalties) uint64 {
	return penalties.Hard*violations.Hard() + penalties.Soft*violations.Soft()
}

func (violations *Violations) record(verdict Verdict) {
	switch verdict {
	case ZeroMembers:
		violations.ZeroMembers++
	case TypeMismatch:
		violations.ClassroomType++
	case RoomContradiction:
		violations.ClassroomNumberContradiction++
	case TeacherMultiplicity:
		violations.MultipleTeachersContradiction++
	case TypeContradiction:
		violations.ClassroomTypeContradiction++
	case TeacherContradiction:
		violations.TeacherContradiction++
	}
}
