package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-storefront-search/internal/app"
	"github.com/tbourn/go-storefront-search/internal/domain"
	"github.com/tbourn/go-storefront-search/internal/search"
	"github.com/tbourn/go-storefront-search/internal/services"
)

var (
	searchPage       int
	searchCategory   string
	searchSort       string
	searchMinPrice   float64
	searchMaxPrice   float64
	searchHighlights bool
	searchJSON       bool

	suggestLimit int
	popularLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Runs a product search against the configured database exactly as the
HTTP endpoint would. Without --sort a query ranks results by relevance.
Searches made here are not recorded as popular terms.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "Show query suggestions",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most searched terms",
	Args:  cobra.NoArgs,
	RunE:  runPopular,
}

func init() {
	f := searchCmd.Flags()
	f.IntVarP(&searchPage, "page", "p", 1, "page number")
	f.StringVarP(&searchCategory, "category", "c", "", "category ID")
	f.StringVarP(&searchSort, "sort", "s", "", "price_asc|price_desc|name_asc|name_desc|popularity|newest")
	f.Float64Var(&searchMinPrice, "min-price", 0, "minimum price")
	f.Float64Var(&searchMaxPrice, "max-price", 0, "maximum price (default SEARCH_DEFAULT_MAX_PRICE)")
	f.BoolVar(&searchHighlights, "highlights", false, "attach match highlight spans")
	f.BoolVar(&searchJSON, "json", false, "output results as JSON")

	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "maximum suggestions (default SUGGEST_DEFAULT_LIMIT)")
	suggestCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")

	popularCmd.Flags().IntVarP(&popularLimit, "limit", "n", 10, "number of terms")
	popularCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd, suggestCmd, popularCmd)
}

// newApp wires services over the migrated database. With track unset,
// searches are not recorded.
func newApp(track bool) (*app.App, func(), error) {
	db, err := openMigrated()
	if err != nil {
		return nil, nil, err
	}
	c := cfg
	if !track {
		c.Tracking.Backend = "none"
	}
	a, err := app.New(c, db)
	if err != nil {
		closeDB(db)
		return nil, nil, err
	}
	return a, func() {
		_ = a.Close()
		closeDB(db)
	}, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, done, err := newApp(false)
	if err != nil {
		return err
	}
	defer done()

	p := a.SearchDefaults
	p.Page = searchPage
	p.CategoryID = strings.TrimSpace(searchCategory)
	p.Sort = domain.SortKey(strings.ToLower(strings.TrimSpace(searchSort)))
	p.MinPrice = searchMinPrice
	if searchMaxPrice > 0 {
		p.MaxPrice = searchMaxPrice
	}
	p.Highlights = p.Highlights || searchHighlights
	if len(args) == 1 {
		p.Search = args[0]
	}

	res, _, err := a.Search.Search(cmd.Context(), p)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchJSON {
		return outputJSON(cmd, res)
	}
	return outputSearchTable(cmd, res)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, done, err := newApp(false)
	if err != nil {
		return err
	}
	defer done()

	res, err := a.Suggest.Suggest(cmd.Context(), args[0], suggestLimit)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}
	if searchJSON {
		return outputJSON(cmd, res)
	}
	if len(res.Suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, s := range res.Suggestions {
		cmd.Println(s)
	}
	return nil
}

func runPopular(cmd *cobra.Command, _ []string) error {
	a, done, err := newApp(true)
	if err != nil {
		return err
	}
	defer done()

	terms, err := a.Tracker.Top(cmd.Context(), popularLimit)
	if err != nil {
		return fmt.Errorf("popular failed: %w", err)
	}
	if searchJSON {
		return outputJSON(cmd, terms)
	}
	if len(terms) == 0 {
		cmd.Println("No searches recorded.")
		return nil
	}
	for i, t := range terms {
		cmd.Printf("  [%d] %s (%d)\n", i+1, t.Term, t.Count)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, res services.SearchResult) error {
	if len(res.Products) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (page %d, %d total):\n\n", res.Page, res.Total)
	for i, p := range res.Products {
		n := (res.Page-1)*res.PerPage + i + 1
		cmd.Printf("  [%d] %s  %.2f", n, p.Name, p.Price)
		if res.Query != nil {
			cmd.Printf("  (%.2f)", p.RelevanceScore)
		}
		cmd.Println()
		if p.CategoryName != nil {
			cmd.Printf("      Category: %s\n", *p.CategoryName)
		}
		if len(p.NameHighlights) > 0 || len(p.DescriptionHighlights) > 0 {
			cmd.Printf("      Match: %s\n", search.RenderHighlights(p.Name, p.NameHighlights, "mark"))
			if len(p.DescriptionHighlights) > 0 {
				cmd.Printf("             %s\n", search.RenderHighlights(p.Description, p.DescriptionHighlights, "mark"))
			}
		}
	}
	return nil
}
