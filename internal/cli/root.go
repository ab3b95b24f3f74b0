package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/santhosh-ovd/indian-dishes/server/internal/dataset"
	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
	"github.com/santhosh-ovd/indian-dishes/server/internal/repository"
	"github.com/santhosh-ovd/indian-dishes/server/internal/service"
	"github.com/santhosh-ovd/indian-dishes/server/pkg/logger"
)

// app holds state shared by the subcommands of one invocation.
type app struct {
	sources  []string
	logLevel string
	output   string

	logger *slog.Logger
	dishes *service.DishService
}

// NewRootCmd creates the root cobra command for dishctl.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dishctl",
		Short: "Query the Indian dishes dataset offline",
		Long:  "dishctl loads a dish dataset and runs the same queries the API serves, without a server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = logger.NewWithFormat(a.logLevel, "text", cmd.ErrOrStderr())

			dishes, err := dataset.LoadAll(cmd.Context(), a.sources)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			repo, err := repository.NewInMemoryDishRepository(dishes)
			if err != nil {
				return fmt.Errorf("build store: %w", err)
			}
			a.dishes = service.NewDishService(repo)
			a.logger.Debug("dataset loaded", "dishes", repo.Len())
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringSliceVar(&a.sources, "data", []string{dataset.EmbeddedSource}, "Dataset sources: embedded, file path or URL (repeatable)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Output format (table, json)")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newSearchCmd(a),
		newPossibleCmd(a),
		newAdvancedCmd(a),
	)

	return root
}

// print writes v as JSON or, for dish slices, as a table.
func (a *app) print(w io.Writer, v any) error {
	if strings.EqualFold(a.output, "json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	switch d := v.(type) {
	case []models.Dish:
		printTable(w, d)
	case *models.Dish:
		printTable(w, []models.Dish{*d})
	case *models.QueryResult:
		printTable(w, d.Data)
		fmt.Fprintf(w, "\n(%d of %d shown)\n", len(d.Data), d.Total)
	default:
		return fmt.Errorf("unsupported output type %T", v)
	}
	return nil
}

func printTable(w io.Writer, dishes []models.Dish) {
	if len(dishes) == 0 {
		fmt.Fprintln(w, "No dishes found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-24s  %-15s  %-12s  %5s  %5s  %-18s  %s\n", "ID", "NAME", "DIET", "COURSE", "PREP", "COOK", "STATE", "REGION")
	fmt.Fprintf(w, "%-5s  %-24s  %-15s  %-12s  %5s  %5s  %-18s  %s\n", "--", "----", "----", "------", "----", "----", "-----", "------")
	for _, d := range dishes {
		fmt.Fprintf(w, "%-5s  %-24s  %-15s  %-12s  %5d  %5d  %-18s  %s\n",
			d.ID, d.Name, d.Diet, d.Course, d.PrepTime, d.CookTime, d.State, d.Region)
	}
}
