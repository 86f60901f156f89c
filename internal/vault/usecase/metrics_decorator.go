package usecase

import (
	"context"
	"crypto/rsa"
	"time"

	"github.com/Nickbot606/clenv/internal/metrics"
	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
)

const metricsDomain = "vault"

// accessManagerWithMetrics decorates AccessManager with metrics instrumentation.
type accessManagerWithMetrics struct {
	next    AccessManager
	metrics metrics.BusinessMetrics
}

// NewAccessManagerWithMetrics wraps an AccessManager with metrics recording.
func NewAccessManagerWithMetrics(next AccessManager, m metrics.BusinessMetrics) AccessManager {
	return &accessManagerWithMetrics{
		next:    next,
		metrics: m,
	}
}

func (a *accessManagerWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	a.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Store records metrics for entry writes.
func (a *accessManagerWithMetrics) Store(
	ctx context.Context,
	namespace, name string,
	data []byte,
	extension string,
) error {
	start := time.Now()
	err := a.next.Store(ctx, namespace, name, data, extension)
	a.record(ctx, "entry_store", start, err)
	return err
}

// Retrieve records metrics for entry reads.
func (a *accessManagerWithMetrics) Retrieve(
	ctx context.Context,
	namespace, name, principal string,
	key *rsa.PrivateKey,
) (*vaultDomain.Secret, error) {
	start := time.Now()
	secret, err := a.next.Retrieve(ctx, namespace, name, principal, key)
	a.record(ctx, "entry_retrieve", start, err)
	return secret, err
}

// Grant records metrics for access grants.
func (a *accessManagerWithMetrics) Grant(
	ctx context.Context,
	namespace, newPrincipal string,
	newKey *rsa.PublicKey,
	actor string,
	actorKey *rsa.PrivateKey,
) error {
	start := time.Now()
	err := a.next.Grant(ctx, namespace, newPrincipal, newKey, actor, actorKey)
	a.record(ctx, "access_grant", start, err)
	return err
}

// Revoke records metrics for access revocations.
func (a *accessManagerWithMetrics) Revoke(ctx context.Context, namespace, target string) error {
	start := time.Now()
	err := a.next.Revoke(ctx, namespace, target)
	a.record(ctx, "access_revoke", start, err)
	return err
}

// ListNamespaces records metrics for namespace listing.
func (a *accessManagerWithMetrics) ListNamespaces(ctx context.Context) ([]string, error) {
	start := time.Now()
	namespaces, err := a.next.ListNamespaces(ctx)
	a.record(ctx, "namespace_list", start, err)
	return namespaces, err
}

// ListEntries records metrics for entry listing.
func (a *accessManagerWithMetrics) ListEntries(ctx context.Context, namespace string) ([]string, error) {
	start := time.Now()
	names, err := a.next.ListEntries(ctx, namespace)
	a.record(ctx, "entry_list", start, err)
	return names, err
}

// DeleteEntry records metrics for entry deletion.
func (a *accessManagerWithMetrics) DeleteEntry(ctx context.Context, namespace, name string) error {
	start := time.Now()
	err := a.next.DeleteEntry(ctx, namespace, name)
	a.record(ctx, "entry_delete", start, err)
	return err
}

// ListPrincipals records metrics for keyring listing.
func (a *accessManagerWithMetrics) ListPrincipals(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := a.next.ListPrincipals(ctx)
	a.record(ctx, "principal_list", start, err)
	return names, err
}
