package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
	"github.com/santhosh-ovd/indian-dishes/server/internal/repository"
)

func newListCmd(a *app) *cobra.Command {
	var (
		req            models.QueryRequest
		sortBy, sortOr string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dishes with filters, sorting and pagination",
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := models.ParseSortField(sortBy)
			if !ok {
				return fmt.Errorf("unknown sort field %q", sortBy)
			}
			req.SortBy = field
			req.SortOrder = models.ParseSortOrder(sortOr)

			result, err := a.dishes.ListDishes(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("list dishes: %w", err)
			}
			return a.print(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().IntVar(&req.Page, "page", models.DefaultPage, "Page number")
	cmd.Flags().IntVar(&req.Limit, "limit", models.DefaultLimit, "Dishes per page")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort field (prep_time, cook_time, name, ...)")
	cmd.Flags().StringVar(&sortOr, "sort-order", "asc", "Sort order (asc, desc)")
	cmd.Flags().StringVar(&req.Diet, "diet", "", "Diet filter (vegetarian, non vegetarian)")
	cmd.Flags().StringVar(&req.Course, "course", "", "Course filter")

	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var byID bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a dish by name (or id with --id)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.Join(args, " ")

			var (
				dish *models.Dish
				err  error
			)
			if byID {
				dish, err = a.dishes.GetDishByID(cmd.Context(), key)
			} else {
				dish, err = a.dishes.GetDishByName(cmd.Context(), key)
			}
			if errors.Is(err, repository.ErrDishNotFound) {
				return fmt.Errorf("dish %q not found", key)
			}
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), dish)
		},
	}

	cmd.Flags().BoolVar(&byID, "id", false, "Look up by id instead of name")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search names, ingredients, states and regions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dishes, err := a.dishes.SearchDishes(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("search dishes: %w", err)
			}
			return a.print(cmd.OutOrStdout(), dishes)
		},
	}
}

func newPossibleCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "possible <ingredient>...",
		Short: "Find dishes that use any of the given ingredients",
		Long: "Find dishes sharing at least one ingredient with the list. Ingredients match when either\n" +
			"contains the other, so \"chilli\" matches \"red chilli powder\". With --all every ingredient\n" +
			"must appear in the dish.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				dishes []models.Dish
				err    error
			)
			if all {
				dishes, err = a.dishes.SearchByIngredients(cmd.Context(), args)
			} else {
				dishes, err = a.dishes.FindPossibleDishes(cmd.Context(), args)
			}
			if err != nil {
				return fmt.Errorf("match ingredients: %w", err)
			}
			return a.print(cmd.OutOrStdout(), dishes)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Require every ingredient")
	return cmd
}

func newAdvancedCmd(a *app) *cobra.Command {
	var c models.SearchCriteria

	cmd := &cobra.Command{
		Use:   "advanced",
		Short: "Search with several criteria combined",
		RunE: func(cmd *cobra.Command, args []string) error {
			dishes, err := a.dishes.AdvancedSearch(cmd.Context(), c)
			if err != nil {
				return fmt.Errorf("advanced search: %w", err)
			}
			return a.print(cmd.OutOrStdout(), dishes)
		},
	}

	cmd.Flags().StringVar(&c.Name, "name", "", "Name contains")
	cmd.Flags().StringVar(&c.State, "state", "", "State equals")
	cmd.Flags().StringVar(&c.Region, "region", "", "Region equals")
	cmd.Flags().StringVar(&c.Diet, "diet", "", "Diet equals (exact)")
	cmd.Flags().StringVar(&c.Course, "course", "", "Course equals")
	cmd.Flags().StringVar(&c.FlavorProfile, "flavor", "", "Flavor profile equals (exact)")

	return cmd
}
