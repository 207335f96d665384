package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/watchfire-io/exlogs/internal/client"
	"github.com/watchfire-io/exlogs/internal/config"
	"github.com/watchfire-io/exlogs/internal/models"
	"github.com/watchfire-io/exlogs/internal/query"
	"github.com/watchfire-io/exlogs/internal/render"
)

// listCellWidth bounds cells in the static table.
const listCellWidth = 40

type listOptions struct {
	search string
	status string
	method string
	page   int
	limit  int
	sortBy string
	order  string
	json   bool
	dryRun bool
}

func newListCmd(flags *globalFlags) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print one page of exception logs",
		Example: `  exlogs list --status 500 --method POST
  exlogs list --search timeout --sort-by statuscode --order asc
  exlogs list --page 2 --limit 25 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader(cmd, flags)
			if err != nil {
				return err
			}
			return runList(cmd, loader, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.search, "search", "s", "", "free-text search")
	f.StringVarP(&opts.status, "status", "c", "", "status code ("+strings.Join(models.StatusCodes[1:], ", ")+")")
	f.StringVarP(&opts.method, "method", "m", "", "HTTP method ("+strings.Join(models.Methods[1:], ", ")+")")
	f.IntVarP(&opts.page, "page", "p", 1, "page number")
	f.IntVarP(&opts.limit, "limit", "l", 0, "records per page (default from settings)")
	f.StringVar(&opts.sortBy, "sort-by", models.SortTimestamp, "sort column (timestamp, statuscode)")
	f.StringVar(&opts.order, "order", string(models.SortDesc), "sort order (asc, desc)")
	f.BoolVar(&opts.json, "json", false, "print the raw result set as JSON")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the request URL without sending it")

	return cmd
}

func runList(cmd *cobra.Command, loader *config.Loader, opts *listOptions) error {
	settings, err := loader.Settings()
	if err != nil {
		return err
	}
	state, err := opts.state(settings.PageSize)
	if err != nil {
		return err
	}
	c, err := client.FromSettings(settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		fmt.Fprintln(out, c.URL(state))
		return nil
	}

	rs, err := c.Fetch(cmd.Context(), state)
	if err != nil {
		log.Error().Err(err).Str("component", "cli").Str("operation", "list").Msg("Failed to fetch exception logs")
		return err
	}

	if opts.json {
		data, err := json.MarshalIndent(rs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	writeTable(out, rs, state, render.Options{
		TimeFormat:   settings.TimeFormat,
		Location:     settings.Location(),
		MaxCellWidth: listCellWidth,
	})
	return nil
}

// state turns the flags into a query state. An unset limit falls back to
// the configured page size.
func (o *listOptions) state(pageSize int) (query.State, error) {
	s := query.New(pageSize)
	if o.limit != 0 {
		if err := s.SetLimit(o.limit); err != nil {
			return s, err
		}
	}

	for field, value := range map[string]string{
		models.FieldSearch:     o.search,
		models.FieldStatusCode: o.status,
		models.FieldMethod:     strings.ToUpper(o.method),
	} {
		if err := s.UpdateFilter(field, value); err != nil {
			return s, err
		}
	}

	if o.sortBy != "" {
		if !query.IsSortable(o.sortBy) {
			return s, fmt.Errorf("%w: %q", query.ErrNotSortable, o.sortBy)
		}
		s.Sort.SortBy = query.SortKey(o.sortBy)
	}
	switch order := models.SortOrder(strings.ToUpper(o.order)); order {
	case models.SortAsc, models.SortDesc:
		s.Sort.SortOrder = order
	case "":
	default:
		return s, fmt.Errorf("invalid sort order %q (want asc or desc)", o.order)
	}

	s.SetPage(o.page)
	return s, nil
}

func writeTable(out io.Writer, rs *models.ResultSet, state query.State, opts render.Options) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(render.Headers(state.Sort))
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	rows := render.Body(rs.Data, opts)
	placeholder := len(rows) == 1 && rows[0].IsPlaceholder()
	if !placeholder {
		data := make([][]string, 0, len(rows))
		for _, r := range rows {
			data = append(data, r.Cells)
		}
		table.AppendBulk(data)
	}
	table.Render()

	if placeholder {
		fmt.Fprintln(out, styleHint.Render(render.Placeholder))
	}

	pages := query.TotalPages(rs.Total, state.Pagination.Limit)
	fmt.Fprintf(out, "Page %d of %d (%d records)\n", state.Pagination.Page, pages, rs.Total)
}
