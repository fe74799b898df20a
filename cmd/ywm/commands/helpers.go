package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dateFlags are the --from/--to bounds shared by history commands.
type dateFlags struct {
	from string
	to   string
}

func (d *dateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&d.to, "to", "", "end date (YYYY-MM-DD)")
}

// dates parses the bounds as calendar dates. Empty bounds stay nil.
func (d *dateFlags) dates() (*webmaster.Date, *webmaster.Date, error) {
	from, err := parseDateFlag(d.from)
	if err != nil {
		return nil, nil, err
	}

	to, err := parseDateFlag(d.to)
	if err != nil {
		return nil, nil, err
	}

	return from, to, nil
}

// dateRange converts the bounds to the timestamp range used by history endpoints.
func (d *dateFlags) dateRange() (webmaster.DateRange, error) {
	from, to, err := d.dates()
	if err != nil {
		return webmaster.DateRange{}, err
	}

	var dateRange webmaster.DateRange
	if from != nil {
		dateRange.DateFrom = &from.Time
	}

	if to != nil {
		dateRange.DateTo = &to.Time
	}

	return dateRange, nil
}

func parseDateFlag(value string) (*webmaster.Date, error) {
	if value == "" {
		return nil, nil
	}

	date, err := webmaster.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidDate, value)
	}

	return &date, nil
}

// pageFlags are the --offset/--limit selectors of sample listings.
type pageFlags struct {
	offset int
	limit  int
}

func (p *pageFlags) register(cmd *cobra.Command, maxLimit int) {
	cmd.Flags().IntVar(&p.offset, "offset", 0, "number of items to skip")
	cmd.Flags().IntVar(&p.limit, "limit", 0, fmt.Sprintf("page size, 1-%d (API default when omitted)", maxLimit))
}

func (p *pageFlags) page(maxLimit int) (webmaster.PageRequest, error) {
	var page webmaster.PageRequest

	if p.offset < 0 {
		return page, fmt.Errorf("%w: offset %d", constants.ErrInvalidLimit, p.offset)
	}

	if p.offset > 0 {
		page.Offset = &p.offset
	}

	if p.limit != 0 {
		if p.limit < 1 || p.limit > maxLimit {
			return page, fmt.Errorf("%w: limit %d, expected 1-%d", constants.ErrInvalidLimit, p.limit, maxLimit)
		}

		page.Limit = &p.limit
	}

	return page, nil
}

// parseEnums upper-cases values and checks them against allowed.
func parseEnums[T ~string](values []string, allowed []T, sentinel error) ([]T, error) {
	parsed := make([]T, 0, len(values))

	for _, value := range values {
		candidate := T(strings.ToUpper(strings.TrimSpace(value)))

		if !slices.Contains(allowed, candidate) {
			return nil, fmt.Errorf("%w: %s", sentinel, value)
		}

		parsed = append(parsed, candidate)
	}

	return parsed, nil
}

func hostIDArg(args []string) string {
	return strings.TrimSpace(args[0])
}

func formatOptionalTime(t *webmaster.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return formatTime(*t)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return constants.None
	}

	return strings.Join(values, ", ")
}

func isTableOutput() bool {
	format := viper.GetString("output")

	return format == "" || format == constants.FormatTable
}
