package portal

import (
	"bytes"
	"io"
	"sort"

	"github.com/dentalexperts/go-portal/pkg/apiclient"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// StatsChart renders server-side chart HTML for the admin dashboard.
type StatsChart struct {
	theme string
}

// StatsChartOption customizes chart rendering.
type StatsChartOption func(*StatsChart)

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) StatsChartOption {
	return func(c *StatsChart) { c.theme = theme }
}

// NewStatsChart builds a chart renderer.
func NewStatsChart(options ...StatsChartOption) *StatsChart {
	c := &StatsChart{theme: types.ThemeWesteros}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Overview renders the headline counters as a bar chart.
func (c *StatsChart) Overview(stats apiclient.DashboardStats) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(c.globalChartOptions("Clinic Overview", "")...)
	bar.SetXAxis([]string{"Users", "Appointments", "Doctors"})
	bar.AddSeries("Totals", []opts.BarData{
		{Name: "Users", Value: stats.Users},
		{Name: "Appointments", Value: stats.Appointments},
		{Name: "Doctors", Value: stats.Doctors},
	})
	return renderChart(bar)
}

// StatusBreakdown renders a bar chart of appointment counts per status.
// Statuses follow the dropdown order, with unknown values appended in
// lexical order so the output stays deterministic.
func (c *StatsChart) StatusBreakdown(appointments []apiclient.Appointment) (string, error) {
	counts := map[string]int{}
	for _, appt := range appointments {
		status, _ := AppointmentStatusColor(appt.Status)
		counts[status]++
	}

	var labels []string
	seen := map[string]bool{}
	for _, status := range AppointmentStatusOptions {
		if counts[status] > 0 {
			labels = append(labels, status)
			seen[status] = true
		}
	}
	var extra []string
	for status := range counts {
		if !seen[status] {
			extra = append(extra, status)
		}
	}
	sort.Strings(extra)
	labels = append(labels, extra...)

	data := make([]opts.BarData, len(labels))
	for i, status := range labels {
		data[i] = opts.BarData{Name: status, Value: counts[status]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(c.globalChartOptions("Appointments by Status", "")...)
	bar.SetXAxis(labels)
	bar.AddSeries("Appointments", data)
	return renderChart(bar)
}

// SpecializationPie renders a pie chart of doctors per specialization.
func (c *StatsChart) SpecializationPie(doctors []apiclient.Doctor) (string, error) {
	counts := map[string]int{}
	for _, doctor := range doctors {
		spec := doctor.Specialization
		if spec == "" {
			spec = "General"
		}
		counts[spec]++
	}
	labels := make([]string, 0, len(counts))
	for spec := range counts {
		labels = append(labels, spec)
	}
	sort.Strings(labels)

	data := make([]opts.PieData, len(labels))
	for i, spec := range labels {
		data[i] = opts.PieData{Name: spec, Value: counts[spec]}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(c.globalChartOptions("Doctors by Specialization", "")...)
	pie.AddSeries("Doctors", data)
	return renderChart(pie)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (c *StatsChart) globalChartOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  c.theme,
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}
