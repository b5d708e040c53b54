package model

import (
	"errors"
	"fmt"
)

var ErrStructural = errors.New("structural error")

type structuralError struct {
	reason string
}

func (err structuralError) Error() string {
	return fmt.Sprintf("%v: %v", ErrStructural, err.reason)
}

func (err structuralError) Is(target error) bool {
	return target == ErrStructural
}

// ClassTuple describes one session. A zero Classroom or Teacher means "no class"
type ClassTuple struct {
	Classroom uint64
	Teacher   uint64
	Type      ClassType
}

// Timetable holds, per group, one class tuple for each timeslot in timeslot order
type Timetable [][]ClassTuple

// ScheduleAssignment holds, per timeslot, the class tuples of every group scheduled at that timeslot
type ScheduleAssignment [][]ClassTuple

func (problem Problem) Decode(bits []uint8) (Timetable, error) {
	if uint64(len(bits)) != problem.Len() {
		return nil, structuralError{fmt.Sprintf("chromosome has %v bits, expected %v", len(bits), problem.Len())}
	} else if problem.TokenWidth() <= 1 || problem.ClassesPerGroup == 0 {
		return nil, structuralError{fmt.Sprintf("token width %v is not decodable", problem.TokenWidth())}
	}

	tokenWidth := problem.TokenWidth()
	indexer := newIndexer(problem.ClassesPerGroup, tokenWidth)

	timetable := make(Timetable, problem.Groups)
	for group := range problem.Groups {
		timetable[group] = make([]ClassTuple, problem.ClassesPerGroup)
		for slot := range problem.ClassesPerGroup {
			offset := indexer.Index(group, slot)
			token := bits[offset : offset+tokenWidth]

			if bad, ok := firstNonBinary(token); ok {
				badGroup, badSlot := indexer.Attributes(offset + bad)
				return nil, structuralError{fmt.Sprintf("bit %v (group %v, slot %v) is %v", offset+bad, badGroup, badSlot, token[bad])}
			}

			timetable[group][slot] = ClassTuple{
				Classroom: readUint(token[:problem.ClassroomBits]),
				Teacher:   readUint(token[problem.ClassroomBits : problem.ClassroomBits+problem.TeacherBits]),
				Type:      ClassType(token[tokenWidth-1]),
			}
		}
	}

	return timetable, nil
}

func (problem Problem) Encode(timetable Timetable) ([]uint8, error) {
	if err := problem.conforms(timetable); err != nil {
		return nil, err
	}

	tokenWidth := problem.TokenWidth()
	indexer := newIndexer(problem.ClassesPerGroup, tokenWidth)

	bits := make([]uint8, problem.Len())
	for group, classes := range timetable {
		for slot, class := range classes {
			if class.Classroom >= 1<<problem.ClassroomBits || class.Teacher >= 1<<problem.TeacherBits || class.Type > Practice {
				return nil, structuralError{fmt.Sprintf("class %+v of group %v at slot %v does not fit its token", class, group, slot)}
			}

			offset := indexer.Index(uint64(group), uint64(slot))
			token := bits[offset : offset+tokenWidth]
			writeUint(token[:problem.ClassroomBits], class.Classroom)
			writeUint(token[problem.ClassroomBits:problem.ClassroomBits+problem.TeacherBits], class.Teacher)
			token[tokenWidth-1] = uint8(class.Type)
		}
	}

	return bits, nil
}

// Regroups a timetable by timeslot, keeping group order within every timeslot
func (problem Problem) Simultaneous(timetable Timetable) ScheduleAssignment {
	assignment := make(ScheduleAssignment, problem.ClassesPerGroup)
	for slot := range assignment {
		assignment[slot] = make([]ClassTuple, 0, len(timetable))
	}
	for _, classes := range timetable {
		for slot, class := range classes {
			assignment[slot] = append(assignment[slot], class)
		}
	}
	return assignment
}

// Checks whether the timetable has the shape dictated by the problem
func (problem Problem) conforms(timetable Timetable) error {
	if uint64(len(timetable)) != problem.Groups {
		return structuralError{fmt.Sprintf("timetable has %v groups, expected %v", len(timetable), problem.Groups)}
	}
	for group, classes := range timetable {
		if uint64(len(classes)) != problem.ClassesPerGroup {
			return structuralError{fmt.Sprintf("group %v has %v classes, expected %v", group, len(classes), problem.ClassesPerGroup)}
		}
	}
	return nil
}

func firstNonBinary(bits []uint8) (uint64, bool) {
	for i, bit := range bits {
		if bit > 1 {
			return uint64(i), true
		}
	}
	return 0, false
}

// Most significant bit first
func readUint(bits []uint8) uint64 {
	var value uint64
	for _, bit := range bits {
		value = value<<1 | uint64(bit)
	}
	return value
}

func writeUint(bits []uint8, value uint64) {
	for i := len(bits) - 1; i >= 0; i-- {
		bits[i] = uint8(value & 1)
		value >>= 1
	}
}
