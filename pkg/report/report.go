package report

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/limaJavier/schedalgen/pkg/genetic"
	"github.com/limaJavier/schedalgen/pkg/model"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Violations renders an itemized, human readable report of an evaluation
func Violations(violations model.Violations) string {
	var builder strings.Builder
	writer := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(writer, "Hard constraint violations\t%v\n", violations.Hard())
	fmt.Fprintf(writer, "  Zero members\t%v\n", violations.ZeroMembers)
	fmt.Fprintf(writer, "  Classroom type\t%v\n", violations.ClassroomType)
	fmt.Fprintf(writer, "  Classroom number contradiction\t%v\n", violations.ClassroomNumberContradiction)
	fmt.Fprintf(writer, "  Multiple teachers contradiction\t%v\n", violations.MultipleTeachersContradiction)
	fmt.Fprintf(writer, "  Classroom type contradiction\t%v\n", violations.ClassroomTypeContradiction)
	fmt.Fprintf(writer, "  Teacher contradiction\t%v\n", violations.TeacherContradiction)
	fmt.Fprintf(writer, "Soft constraint violations\t%v\n", violations.Soft())
	fmt.Fprintf(writer, "  Group limit\t%v\n", violations.GroupLimit)

	writer.Flush()
	return builder.String()
}

// WriteLogbook streams the logbook as an aligned gen/nevals/min/mean table
func WriteLogbook(w io.Writer, logbook genetic.Logbook) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(writer, "gen\tnevals\tmin\tmean\t")
	for _, record := range logbook {
		fmt.Fprintf(writer, "%v\t%v\t%v\t%.2f\t\n", record.Generation, record.Evaluations, record.Min, record.Mean)
	}
	return writer.Flush()
}

// PlotConvergence draws min (red, dashed) and mean (blue) fitness per generation.
// The image format follows the file extension
func PlotConvergence(logbook genetic.Logbook, path string) error {
	if len(logbook) == 0 {
		return fmt.Errorf("cannot plot an empty logbook")
	}

	p := plot.New()
	p.Title.Text = "Min and mean fitness over generations"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Min/mean fitness value"
	p.X.Min = 0
	p.Y.Min = 0

	toPoints := func(values []float64) plotter.XYs {
		return lo.Map(values, func(value float64, generation int) plotter.XY {
			return plotter.XY{X: float64(generation), Y: value}
		})
	}

	minLine, err := plotter.NewLine(toPoints(logbook.Min()))
	if err != nil {
		return err
	}
	minLine.Color = color.RGBA{R: 255, A: 255}
	minLine.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	meanLine, err := plotter.NewLine(toPoints(logbook.Mean()))
	if err != nil {
		return err
	}
	meanLine.Color = color.RGBA{B: 255, A: 255}

	p.Add(minLine, meanLine)
	p.Legend.Add("min", minLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("cannot save plot: %w", err)
	}
	return nil
}

type scheduledClass struct {
	Slot      uint64 `json:"slot"`
	Day       uint64 `json:"day"`
	Period    uint64 `json:"period"`
	Classroom uint64 `json:"classroom"`
	Teacher   uint64 `json:"teacher"`
	Type      string `json:"type"`
}

type groupSchedule struct {
	Group   uint64           `json:"group"`
	Classes []scheduledClass `json:"classes"`
}

// SaveTimetable writes the timetable as JSON, one entry per group listing its classes in timeslot order
func SaveTimetable(path string, problem model.Problem, timetable model.Timetable) error {
	if uint64(len(timetable)) != problem.Groups {
		return fmt.Errorf("timetable has %v groups, expected %v", len(timetable), problem.Groups)
	}

	schedules := lo.Map(timetable, func(classes []model.ClassTuple, group int) groupSchedule {
		return groupSchedule{
			Group: uint64(group),
			Classes: lo.Map(classes, func(class model.ClassTuple, slot int) scheduledClass {
				day, period := problem.DayAndPeriod(uint64(slot))
				return scheduledClass{
					Slot:      uint64(slot),
					Day:       day,
					Period:    period,
					Classroom: class.Classroom,
					Teacher:   class.Teacher,
					Type:      class.Type.String(),
				}
			}),
		}
	})

	bytes, err := json.MarshalIndent(schedules, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal timetable: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0666); err != nil {
		return fmt.Errorf("cannot write timetable: %w", err)
	}
	return nil
}
