package model

import "fmt"

// Verdict is the outcome of checking one class tuple, either alone or against another tuple of the same timeslot
type Verdict int

const (
	Distinct Verdict = iota
	ZeroMembers
	TypeMismatch
	RoomContradiction    // Same teacher and class type in different classrooms
	TeacherMultiplicity  // Same classroom and class type with different teachers
	TypeContradiction    // Same classroom and teacher with different class types
	TeacherContradiction // Same teacher with different classroom and class type
)

var verdictNames = map[Verdict]string{
	Distinct:             "distinct",
	ZeroMembers:          "zero-members",
	TypeMismatch:         "classroom-type mismatch",
	RoomContradiction:    "classroom-number contradiction",
	TeacherMultiplicity:  "multiple-teachers contradiction",
	TypeContradiction:    "classroom-type contradiction",
	TeacherContradiction: "teacher contradiction",
}

func (verdict Verdict) String() string {
	if name, ok := verdictNames[verdict]; ok {
		return name
	}
	return fmt.Sprintf("Verdict(%d)", int(verdict))
}

// Compares two class tuples occurring at the same timeslot. Identical tuples are Distinct, since they describe a shared class
func Compare(first, second ClassTuple) Verdict {
	sameClassroom := first.Classroom == second.Classroom
	sameTeacher := first.Teacher == second.Teacher
	sameType := first.Type == second.Type

	switch [3]bool{sameClassroom, sameTeacher, sameType} {
	case [3]bool{false, true, true}:
		return RoomContradiction
	case [3]bool{true, false, true}:
		return TeacherMultiplicity
	case [3]bool{true, true, false}:
		return TypeContradiction
	case [3]bool{false, true, false}:
		return TeacherContradiction
	default:
		return Distinct
	}
}
