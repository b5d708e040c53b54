package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

var ErrInvalidProblem = errors.New("invalid problem")

var validate = validator.New()

type ClassType uint8

const (
	Lecture ClassType = iota
	Practice
)

func (classType ClassType) String() string {
	switch classType {
	case Lecture:
		return "lecture"
	case Practice:
		return "practice"
	}
	return fmt.Sprintf("ClassType(%d)", uint8(classType))
}

// Problem holds the immutable sizes of a timetabling instance. Every group is
// scheduled into ClassesPerGroup timeslots, and each timeslot is encoded as a
// token of ClassroomBits + TeacherBits + 1 (class type) bits.
type Problem struct {
	Groups             uint64   `mapstructure:"groups" validate:"gt=0"`
	ClassesPerGroup    uint64   `mapstructure:"classes_per_group" validate:"gt=0"`
	SlotsPerDay        uint64   `mapstructure:"slots_per_day"` // Zero means every timeslot belongs to the same day
	ClassroomBits      uint64   `mapstructure:"classroom_bits" validate:"gt=0,lte=32"`
	TeacherBits        uint64   `mapstructure:"teacher_bits" validate:"gt=0,lte=32"`
	LectureClassrooms  []uint64 `mapstructure:"lecture_classrooms"`
	PracticeClassrooms []uint64 `mapstructure:"practice_classrooms"`
	GroupsPerLecture   uint64   `mapstructure:"groups_per_lecture" validate:"gt=0"`
	GroupsPerPractice  uint64   `mapstructure:"groups_per_practice" validate:"gt=0"`
}

func ProblemFromJson(file string) (Problem, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Problem{}, err
	}
	var problemJson map[string]any
	if err := json.Unmarshal(bytes, &problemJson); err != nil {
		return Problem{}, err
	}

	var problem Problem
	if err := mapstructure.Decode(problemJson, &problem); err != nil {
		return Problem{}, fmt.Errorf("cannot decode problem: %w", err)
	}
	return problem, problem.Validate()
}

func (problem Problem) Validate() error {
	if err := validate.Struct(problem); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProblem, err)
	}

	maxClassroom := uint64(1)<<problem.ClassroomBits - 1
	for _, classroom := range slices.Concat(problem.LectureClassrooms, problem.PracticeClassrooms) {
		if classroom == 0 || classroom > maxClassroom {
			return fmt.Errorf("%w: classroom %v cannot be encoded in %v bits", ErrInvalidProblem, classroom, problem.ClassroomBits)
		}
	}
	if shared := lo.Intersect(problem.LectureClassrooms, problem.PracticeClassrooms); len(shared) > 0 {
		return fmt.Errorf("%w: classrooms %v are both lecture-only and practice-only", ErrInvalidProblem, shared)
	}
	if problem.SlotsPerDay > 0 && problem.ClassesPerGroup%problem.SlotsPerDay != 0 {
		return fmt.Errorf("%w: %v classes per group do not split into days of %v slots", ErrInvalidProblem, problem.ClassesPerGroup, problem.SlotsPerDay)
	}
	return nil
}

// Width of a single class token
func (problem Problem) TokenWidth() uint64 {
	return problem.ClassroomBits + problem.TeacherBits + 1
}

// Width of a whole group schedule
func (problem Problem) GroupWidth() uint64 {
	return problem.ClassesPerGroup * problem.TokenWidth()
}

// Number of bits of a full candidate timetable
func (problem Problem) Len() uint64 {
	return problem.Groups * problem.GroupWidth()
}

// Returns how many groups may attend the same class of the given type
func (problem Problem) Capacity(classType ClassType) uint64 {
	if classType == Practice {
		return problem.GroupsPerPractice
	}
	return problem.GroupsPerLecture
}

// Splits a timeslot into its day and period
func (problem Problem) DayAndPeriod(slot uint64) (day, period uint64) {
	if problem.SlotsPerDay == 0 {
		return 0, slot
	}
	return slot / problem.SlotsPerDay, slot % problem.SlotsPerDay
}

// Returns a uniformly random candidate timetable
func (problem Problem) RandomBits(rng *rand.Rand) []uint8 {
	bits := make([]uint8, problem.Len())
	for i := range bits {
		bits[i] = uint8(rng.Intn(2))
	}
	return bits
}
