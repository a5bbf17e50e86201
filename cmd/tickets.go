package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cinemahall-cli/model"
	"cinemahall-cli/store"
	"github.com/go-playground/validator/v10"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newTicketsCmd(rt *runtime) *cobra.Command {
	var prompt, local bool

	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List your confirmed bookings",
		Long:  `List the bookings confirmed for your e-mail. With --local only the bookings made from this machine are shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email := rt.cfg.UserEmail
			if prompt {
				value, err := promptEmail(email)
				if err != nil {
					return err
				}
				email = value
			}

			var records []model.BookingRecord
			if local {
				history, err := store.LoadBookings()
				if err != nil {
					return fmt.Errorf("load local bookings: %w", err)
				}
				for _, b := range history {
					records = append(records, b.Record())
				}
			} else {
				remote, err := rt.client.GetMyBookings(cmd.Context(), email)
				if err != nil {
					rt.log.WithError(err).Warn("list bookings failed")
					return fmt.Errorf("load bookings: %w", err)
				}
				records = remote
			}

			renderTickets(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().BoolVar(&prompt, "prompt", false, "ask for the e-mail before listing")
	cmd.Flags().BoolVar(&local, "local", false, "list bookings remembered on this machine")
	return cmd
}

func promptEmail(current string) (string, error) {
	prompt := promptui.Prompt{
		Label:    "Your e-mail",
		Default:  current,
		Validate: validateEmail,
	}

	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("read e-mail: %w", err)
	}
	return strings.TrimSpace(value), nil
}

var validate = validator.New()

func validateEmail(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return errors.New("e-mail is required")
	}
	if err := validate.Var(input, "email"); err != nil {
		return errors.New("invalid e-mail")
	}
	return nil
}

func renderTickets(w io.Writer, records []model.BookingRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No bookings found.")
		return
	}

	sorted := append([]model.BookingRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MovieTitle < sorted[j].MovieTitle
	})

	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Movie", "Code", "Seats", "Date"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, WidthMax: 24},
	})
	t.Style().Options.SeparateRows = true

	for _, r := range sorted {
		t.AppendRow(table.Row{
			r.MovieTitle,
			strings.ToUpper(r.BookingCode),
			strings.Join(r.Seats, ", "),
			r.Date,
		}, rowConfigAutoMerge)
	}
	t.AppendFooter(table.Row{"", "", "Bookings", len(sorted)})
	t.Render()
}
