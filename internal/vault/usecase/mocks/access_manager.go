// Package mocks provides mock implementations of the vault use cases for testing.
package mocks

import (
	"context"
	"crypto/rsa"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
)

// MockAccessManager is a mock implementation of AccessManager for testing.
type MockAccessManager struct {
	mock.Mock
}

// NewMockAccessManager creates a MockAccessManager whose expectations are asserted on test cleanup.
func NewMockAccessManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccessManager {
	m := &MockAccessManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Store mocks the Store method of AccessManager.
func (m *MockAccessManager) Store(
	ctx context.Context,
	namespace, name string,
	data []byte,
	extension string,
) error {
	args := m.Called(ctx, namespace, name, data, extension)
	return args.Error(0)
}

// Retrieve mocks the Retrieve method of AccessManager.
func (m *MockAccessManager) Retrieve(
	ctx context.Context,
	namespace, name, principal string,
	key *rsa.PrivateKey,
) (*vaultDomain.Secret, error) {
	args := m.Called(ctx, namespace, name, principal, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.Secret), args.Error(1)
}

// Grant mocks the Grant method of AccessManager.
func (m *MockAccessManager) Grant(
	ctx context.Context,
	namespace, newPrincipal string,
	newKey *rsa.PublicKey,
	actor string,
	actorKey *rsa.PrivateKey,
) error {
	args := m.Called(ctx, namespace, newPrincipal, newKey, actor, actorKey)
	return args.Error(0)
}

// Revoke mocks the Revoke method of AccessManager.
func (m *MockAccessManager) Revoke(ctx context.Context, namespace, target string) error {
	args := m.Called(ctx, namespace, target)
	return args.Error(0)
}

// ListNamespaces mocks the ListNamespaces method of AccessManager.
func (m *MockAccessManager) ListNamespaces(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// ListEntries mocks the ListEntries method of AccessManager.
func (m *MockAccessManager) ListEntries(ctx context.Context, namespace string) ([]string, error) {
	args := m.Called(ctx, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// DeleteEntry mocks the DeleteEntry method of AccessManager.
func (m *MockAccessManager) DeleteEntry(ctx context.Context, namespace, name string) error {
	args := m.Called(ctx, namespace, name)
	return args.Error(0)
}

// ListPrincipals mocks the ListPrincipals method of AccessManager.
func (m *MockAccessManager) ListPrincipals(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
