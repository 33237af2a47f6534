package commands

import (
	"fmt"
	"io"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

type catalogSubOptionOutput struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Subsumes []string `json:"subsumes,omitempty"`
}

type catalogCategoryOutput struct {
	ID         string                   `json:"id"`
	Label      string                   `json:"label"`
	SubOptions []catalogSubOptionOutput `json:"sub_options"`
}

// RunCatalog prints the capability catalog: every category, its sub-options and the
// categories each super sub-option subsumes.
func RunCatalog(catalog *permissionDomain.Catalog, writer io.Writer, format string) error {
	categories := catalog.Categories()

	if format == FormatJSON {
		out := make([]catalogCategoryOutput, 0, len(categories))
		for _, category := range categories {
			item := catalogCategoryOutput{
				ID:         category.ID,
				Label:      category.Label,
				SubOptions: make([]catalogSubOptionOutput, 0, len(category.SubOptions)),
			}
			for _, sub := range category.SubOptions {
				item.SubOptions = append(item.SubOptions, catalogSubOptionOutput{
					ID:       sub.ID,
					Label:    sub.Label,
					Subsumes: catalog.Subsumes(sub.ID),
				})
			}
			out = append(out, item)
		}
		return writeJSON(writer, map[string]any{
			"version":    catalog.Version(),
			"categories": out,
		})
	}

	_, _ = fmt.Fprintf(writer, "Capability Catalog %s\n\n", catalog.Version())
	for _, category := range categories {
		_, _ = fmt.Fprintf(writer, "%s (%s)\n", category.ID, category.Label)
		for _, sub := range category.SubOptions {
			_, _ = fmt.Fprintf(writer, "  - %s (%s)", sub.ID, sub.Label)
			if subsumed := catalog.Subsumes(sub.ID); len(subsumed) > 0 {
				_, _ = fmt.Fprintf(writer, " -> %v", subsumed)
			}
			_, _ = fmt.Fprintln(writer)
		}
	}
	return nil
}
