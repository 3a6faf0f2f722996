package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"doctor-directory/cmd/bootstrap"
	"doctor-directory/config"
	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"
	"doctor-directory/internal/repository"
	"doctor-directory/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type listOptions struct {
	url          string
	specialities []string
	sort         string
}

func listCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the directory once and print the filtered doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			bootstrap.SetupLogger(cfg.App.LogLevel)

			if opts.url != "" {
				cfg.Directory.SourceURL = opts.url
			}
			if opts.sort != "" && entity.ParseSortOrder(opts.sort) == entity.SortNone {
				return fmt.Errorf("unknown sort %q, expected price or experience", opts.sort)
			}

			source := repository.NewHTTPDoctorSource(cfg.Directory.SourceURL, cfg.Directory.FetchTimeout)
			page, err := listDirectory(cmd.Context(), source, opts)
			if err != nil {
				return err
			}
			return printDirectory(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "Doctor list URL (defaults to DIRECTORY_SOURCE_URL)")
	cmd.Flags().StringArrayVar(&opts.specialities, "speciality", nil, "Speciality to filter by (repeatable)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Order results by price or experience")

	return cmd
}

func listDirectory(ctx context.Context, source domainRepo.DoctorSource, opts *listOptions) (*entity.DirectoryPage, error) {
	view := usecase.NewDirectoryView(logrus.StandardLogger())
	defer view.Close()

	view.Load(ctx, source)
	if state := view.State(); state.IsFailed() {
		return nil, fmt.Errorf("failed to load doctor directory: %s", state.Reason)
	}

	for _, name := range opts.specialities {
		if err := view.ToggleSpeciality(name); err != nil {
			return nil, err
		}
	}

	return view.Page(entity.ParseSortOrder(opts.sort)), nil
}

func printDirectory(out io.Writer, page *entity.DirectoryPage) error {
	fmt.Fprintf(out, "Specialities: %s\n", strings.Join(page.Specialities, ", "))
	if !page.Selection.IsEmpty() {
		fmt.Fprintf(out, "Selected: %s\n", strings.Join(page.Selection.Names(), ", "))
	}
	fmt.Fprintf(out, "Showing %d of %d doctors\n\n", len(page.Doctors), page.Total)

	if len(page.Doctors) == 0 {
		fmt.Fprintln(out, "No doctors match the selected filters.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPECIALITIES\tEXPERIENCE\tFEES\tCLINIC")
	for _, d := range page.Doctors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			d.Name,
			strings.Join(d.SpecialityNames(), ", "),
			d.Experience,
			d.Fees,
			d.Clinic.Name,
		)
	}
	return w.Flush()
}
