package reporter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vscode-server-fetcher/pkg/inventory"
	"github.com/vscode-server-fetcher/pkg/version"
)

type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Versions(versions version.VersionMap) error {
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tTAG\tTYPE\tSHA")
	fmt.Fprintln(w, "-------\t---\t----\t---")

	for _, row := range versionRows(versions) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Version, row.Tag, row.Type, shortSHA(row.SHA))
	}
	return w.Flush()
}

func (r *TableReporter) Inventory(entries []inventory.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(r.w, "No downloaded server bundles found.")
		return nil
	}

	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tCOMMIT\tARTIFACT\tSIZE")
	fmt.Fprintln(w, "-------\t------\t--------\t----")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Version, shortSHA(e.Commit), e.Artifact, e.Size)
	}
	return w.Flush()
}
