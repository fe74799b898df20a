package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const defaultIndent = 2

// tableData is the tabular view of a result used by the table and markdown formats.
type tableData struct {
	header []string
	rows   [][]string
}

func (t *tableData) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// propertyTable starts a two-column Property/Value table.
func propertyTable() *tableData {
	return &tableData{header: []string{"Property", "Value"}}
}

// render writes data in the format selected by --output. The table view is
// built lazily so json and yaml never pay for it.
func render(cmd *cobra.Command, data interface{}, table func() *tableData) error {
	out := cmd.OutOrStdout()

	switch format := viper.GetString("output"); format {
	case constants.FormatJSON:
		return renderJSON(out, data)
	case constants.FormatYAML:
		return renderYAML(out, data)
	case constants.FormatMarkdown:
		return renderMarkdown(out, table())
	case constants.FormatTable, "":
		return renderTable(out, table())
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, format)
	}
}

func renderJSON(out io.Writer, data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", defaultIndent))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

func renderYAML(out io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(defaultIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

func renderTable(out io.Writer, data *tableData) error {
	table := tablewriter.NewWriter(out)
	table.Header(data.header)

	for _, row := range data.rows {
		err := table.Append(row)
		if err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderMarkdown(out io.Writer, data *tableData) error {
	md := markdown.NewMarkdown(out)
	md.Table(markdown.TableSet{
		Header: data.header,
		Rows:   data.rows,
	})

	err := md.Build()
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	return nil
}


// humanize turns an API enum such as NO_SITEMAPS into "No Sitemaps".
func humanize[T ~string](value T) string {
	if value == "" {
		return constants.None
	}

	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(string(value)), "_", " "))
}

func formatTime(t webmaster.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format(time.DateTime)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format(webmaster.DateLayout)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return constants.CheckMarkSymbol
	}

	return ""
}

// historyTable lays out indicator series side by side, one row per date.
func historyTable[K ~string](indicators map[K][]webmaster.HistoryPoint, order []K) *tableData {
	data := &tableData{header: []string{"Date"}}
	values := make(map[string][]string)

	var dates []string

	for column, key := range order {
		data.header = append(data.header, humanize(key))

		for _, point := range indicators[key] {
			date := formatDate(point.Date.Time)

			row, ok := values[date]
			if !ok {
				dates = append(dates, date)
				row = make([]string, len(order))
			}

			row[column] = formatFloat(point.Value)
			values[date] = row
		}
	}

	for _, date := range dates {
		data.add(append([]string{date}, values[date]...)...)
	}

	return data
}

// pointsTable renders a single series.
func pointsTable(points []webmaster.HistoryPoint, label string) *tableData {
	data := &tableData{header: []string{"Date", label}}
	for _, point := range points {
		data.add(formatDate(point.Date.Time), formatFloat(point.Value))
	}

	return data
}
