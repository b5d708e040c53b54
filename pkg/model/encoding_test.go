package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallProblem() Problem {
	return Problem{
		Groups:             2,
		ClassesPerGroup:    3,
		SlotsPerDay:        3,
		ClassroomBits:      2,
		TeacherBits:        3,
		LectureClassrooms:  []uint64{1},
		PracticeClassrooms: []uint64{2},
		GroupsPerLecture:   2,
		GroupsPerPractice:  1,
	}
}

func TestDecode(t *testing.T) {
	problem := smallProblem()

	t.Run("Correct flow", func(t *testing.T) {
		//** Arrange
		bits := []uint8{
			// Group 0
			0, 1, 0, 0, 1, 0, // classroom 1, teacher 1, lecture
			1, 0, 1, 0, 0, 1, // classroom 2, teacher 4, practice
			0, 0, 0, 0, 0, 0, // no class
			// Group 1
			1, 1, 1, 1, 1, 1, // classroom 3, teacher 7, practice
			0, 1, 0, 0, 1, 0, // classroom 1, teacher 1, lecture
			0, 0, 0, 1, 1, 0, // classroom 0, teacher 3, lecture
		}

		//** Act
		timetable, err := problem.Decode(bits)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, Timetable{
			{{1, 1, Lecture}, {2, 4, Practice}, {0, 0, Lecture}},
			{{3, 7, Practice}, {1, 1, Lecture}, {0, 3, Lecture}},
		}, timetable)
	})

	t.Run("Wrong length", func(t *testing.T) {
		_, err := problem.Decode(make([]uint8, problem.Len()-1))
		assert.ErrorIs(t, err, ErrStructural)
	})

	t.Run("Non binary bit", func(t *testing.T) {
		//** Arrange
		bits := make([]uint8, problem.Len())
		bits[problem.GroupWidth()+problem.TokenWidth()+2] = 2

		//** Act
		_, err := problem.Decode(bits)

		//** Assert
		assert.ErrorIs(t, err, ErrStructural)
		assert.Contains(t, err.Error(), "group 1, slot 1")
	})
}

func TestEncodeIsInverseOfDecode(t *testing.T) {
	problem := smallProblem()
	rng := rand.New(rand.NewSource(7))

	for range 20 {
		//** Arrange
		bits := problem.RandomBits(rng)

		//** Act
		timetable, err := problem.Decode(bits)
		require.NoError(t, err)
		encoded, err := problem.Encode(timetable)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, bits, encoded)
	}
}

func TestEncodeRejectsMalformedTimetables(t *testing.T) {
	problem := smallProblem()

	t.Run("Missing group", func(t *testing.T) {
		_, err := problem.Encode(Timetable{{{1, 1, Lecture}, {1, 1, Lecture}, {1, 1, Lecture}}})
		assert.ErrorIs(t, err, ErrStructural)
	})

	t.Run("Classroom out of range", func(t *testing.T) {
		_, err := problem.Encode(Timetable{
			{{4, 1, Lecture}, {1, 1, Lecture}, {1, 1, Lecture}},
			{{1, 1, Lecture}, {1, 1, Lecture}, {1, 1, Lecture}},
		})
		assert.ErrorIs(t, err, ErrStructural)
	})
}

func TestSimultaneous(t *testing.T) {
	//** Arrange
	problem := smallProblem()
	timetable := Timetable{
		{{1, 1, Lecture}, {2, 4, Practice}, {0, 0, Lecture}},
		{{3, 7, Practice}, {1, 1, Lecture}, {0, 3, Lecture}},
	}

	//** Act
	assignment := problem.Simultaneous(timetable)

	//** Assert
	assert.Equal(t, ScheduleAssignment{
		{{1, 1, Lecture}, {3, 7, Practice}},
		{{2, 4, Practice}, {1, 1, Lecture}},
		{{0, 0, Lecture}, {0, 3, Lecture}},
	}, assignment)
}

func TestIndexAndAttributes(t *testing.T) {
	scenarios := [][]uint64{
		{1, 1, 2},
		{5, 8, 6},
		{10, 30, 11},
		{3, 4, 9},
	}

	for _, scenario := range scenarios {
		//** Arrange
		groups, slots, tokenWidth := scenario[0], scenario[1], scenario[2]
		indexer := newIndexer(slots, tokenWidth)

		for group := range groups {
			for slot := range slots {
				//** Act
				offset := indexer.Index(group, slot)

				//** Assert
				assert.Equal(t, (group*slots+slot)*tokenWidth, offset)
				for bit := range tokenWidth {
					actualGroup, actualSlot := indexer.Attributes(offset + bit)
					assert.Equal(t, group, actualGroup)
					assert.Equal(t, slot, actualSlot)
				}
			}
		}
	}
}
