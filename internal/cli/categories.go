package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/appstore/internal/category"
	"github.com/vietddude/appstore/internal/core/domain"
	"github.com/vietddude/appstore/internal/infra/operation"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Fetch the category list once and print it",
	Run:   runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	client := operation.NewClient(cfg.Environment.OperationServer, cfg.Category.RequestTimeout)
	defer func() {
		_ = client.Close()
	}()

	provider := category.NewProvider(client, category.Config{
		ThrottleWindow: cfg.Category.ThrottleWindow,
		MaxRetries:     cfg.Category.Retries(),
	})

	categories := provider.GetCategories(context.Background())
	printCategories(os.Stdout, categories, provider.Fallback())
}

func printCategories(out io.Writer, categories []domain.Category, fallback bool) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tICONS\tAPPS")
	for _, c := range categories {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Title, strings.Join(c.Icon, ","), len(c.Apps))
	}
	_ = w.Flush()

	if fallback {
		_, _ = fmt.Fprintln(out, "(default categories)")
	}
}
