package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/Nickbot606/clenv/internal/errors"
	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// ShowInput describes what the show command prints.
type ShowInput struct {
	// Database is a label for the selected vault, such as the SQLite file path.
	Database  string
	Identity  string
	Namespace string
}

// RunShow prints the selected vault, the principals with access, the namespaces and the
// entries of the selected namespace.
func RunShow(ctx context.Context, manager vaultUseCase.AccessManager, writer io.Writer, input ShowInput) error {
	principals, err := manager.ListPrincipals(ctx)
	if err != nil {
		return fmt.Errorf("failed to list principals: %w", err)
	}

	namespaces, err := manager.ListNamespaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list namespaces: %w", err)
	}

	entries, err := manager.ListEntries(ctx, input.Namespace)
	if err != nil && !errors.Is(err, storageDomain.ErrNamespaceMissing) {
		return fmt.Errorf("failed to list %s: %w", input.Namespace, err)
	}

	_, _ = fmt.Fprintf(writer, "Database: %s\n", input.Database)
	_, _ = fmt.Fprintf(writer, "Identity: %s\n", input.Identity)

	_, _ = fmt.Fprintln(writer, "\nPrincipals:")
	printList(writer, principals, input.Identity)

	_, _ = fmt.Fprintln(writer, "\nNamespaces:")
	printList(writer, namespaces, input.Namespace)

	_, _ = fmt.Fprintf(writer, "\nEntries in %s:\n", input.Namespace)
	printList(writer, entries, "")
	return nil
}

// printList prints one item per line, marking current with an asterisk.
func printList(writer io.Writer, items []string, current string) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(writer, "  (none)")
		return
	}
	for _, item := range items {
		if item == current {
			_, _ = fmt.Fprintf(writer, "  %s *\n", item)
			continue
		}
		_, _ = fmt.Fprintf(writer, "  %s\n", item)
	}
}
