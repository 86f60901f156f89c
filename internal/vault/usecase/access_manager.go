package usecase

import (
	"context"
	"crypto/rsa"
	"log/slog"

	"github.com/google/uuid"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
	"github.com/Nickbot606/clenv/internal/database"
	"github.com/Nickbot606/clenv/internal/errors"
	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
)

// accessManager implements AccessManager.
type accessManager struct {
	txManager  database.TxManager
	keyring    KeyringRepository
	namespaces NamespaceRepository
	envelope   cryptoService.EnvelopeCipher
	logger     *slog.Logger
}

// NewAccessManager creates a new AccessManager.
func NewAccessManager(
	txManager database.TxManager,
	keyring KeyringRepository,
	namespaces NamespaceRepository,
	envelope cryptoService.EnvelopeCipher,
	logger *slog.Logger,
) AccessManager {
	return &accessManager{
		txManager:  txManager,
		keyring:    keyring,
		namespaces: namespaces,
		envelope:   envelope,
		logger:     logger,
	}
}

// Store encrypts data for the full keyring and persists it.
func (a *accessManager) Store(
	ctx context.Context,
	namespace, name string,
	data []byte,
	extension string,
) error {
	if err := validateEntryRef(namespace, name); err != nil {
		return err
	}
	if err := vaultDomain.ValidateExtension(extension); err != nil {
		return err
	}
	if len(data) > cryptoDomain.MaxPayloadSize {
		return errors.Wrapf(cryptoDomain.ErrPayloadTooLarge, "%s/%s is %d bytes, limit %d",
			namespace, name, len(data), cryptoDomain.MaxPayloadSize)
	}

	var recipients []string
	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		principals, err := a.keyring.List(txCtx)
		if err != nil {
			return err
		}
		if len(principals) == 0 {
			return vaultDomain.ErrKeyringEmpty
		}

		cryptoRecipients := make([]cryptoDomain.Recipient, 0, len(principals))
		for _, p := range principals {
			cryptoRecipients = append(cryptoRecipients, cryptoDomain.Recipient{
				Name:      p.Name,
				PublicKey: p.PublicKey,
			})
			recipients = append(recipients, p.Name)
		}

		envelope, err := a.envelope.Encrypt(data, cryptoRecipients)
		if err != nil {
			return err
		}
		cryptoDomain.Zero(envelope.ContentKey)

		if err := a.namespaces.CreateNamespaceIfAbsent(txCtx, namespace); err != nil {
			return err
		}

		return a.namespaces.Put(txCtx, namespace, name, &vaultDomain.EncryptedEntry{
			Ciphertext:  envelope.Ciphertext,
			Nonce:       envelope.Nonce,
			WrappedKeys: envelope.WrappedKeys,
			Extension:   extension,
		})
	})
	if err != nil {
		return err
	}

	a.logger.Info("entry stored",
		slog.String("namespace", namespace),
		slog.String("entry", name),
		slog.Int("recipients", len(recipients)),
		slog.Int("size", len(data)),
	)
	return nil
}

// Retrieve decrypts an entry with principal's private key.
func (a *accessManager) Retrieve(
	ctx context.Context,
	namespace, name, principal string,
	key *rsa.PrivateKey,
) (*vaultDomain.Secret, error) {
	if err := validateEntryRef(namespace, name); err != nil {
		return nil, err
	}

	entry, err := a.namespaces.Get(ctx, namespace, name)
	if err != nil {
		return nil, err
	}

	wrappedKey, ok := entry.WrappedKeys[principal]
	if !ok {
		return nil, errors.Wrapf(vaultDomain.ErrNotAuthorized, "%q on %s/%s", principal, namespace, name)
	}

	plaintext, err := a.envelope.Decrypt(wrappedKey, entry.Ciphertext, entry.Nonce, key)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrDecompressionFailed) {
			return nil, errors.Wrapf(vaultDomain.ErrMalformedEntry, "%s/%s: %s", namespace, name, err.Error())
		}
		return nil, err
	}

	a.logger.Debug("entry retrieved",
		slog.String("namespace", namespace),
		slog.String("entry", name),
		slog.String("principal", principal),
	)
	return &vaultDomain.Secret{Data: plaintext, Extension: entry.Extension}, nil
}

// Grant registers newPrincipal and re-wraps every entry of namespace for it as one batch.
func (a *accessManager) Grant(
	ctx context.Context,
	namespace, newPrincipal string,
	newKey *rsa.PublicKey,
	actor string,
	actorKey *rsa.PrivateKey,
) error {
	if err := vaultDomain.ValidateNamespace(namespace); err != nil {
		return err
	}
	if err := vaultDomain.ValidatePrincipalName(newPrincipal); err != nil {
		return err
	}
	if err := vaultDomain.ValidatePrincipalName(actor); err != nil {
		return err
	}
	if newKey == nil {
		return errors.Wrap(cryptoDomain.ErrInvalidPublicKey, "nil public key")
	}
	if newKey.N.BitLen() < cryptoDomain.MinRSAKeyBits {
		return cryptoDomain.ErrWeakKey
	}

	operationID := uuid.Must(uuid.NewV7()).String()
	logger := a.logger.With(
		slog.String("operation_id", operationID),
		slog.String("namespace", namespace),
		slog.String("principal", newPrincipal),
		slog.String("actor", actor),
	)

	var (
		superseded bool
		rewrapped  int
	)
	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		superseded, rewrapped = false, 0

		existing, err := a.keyring.Get(txCtx, newPrincipal)
		switch {
		case err == nil:
			superseded = !existing.PublicKey.Equal(newKey)
		case errors.Is(err, vaultDomain.ErrPrincipalNotFound):
		default:
			return err
		}

		if err := a.keyring.Put(txCtx, newPrincipal, newKey); err != nil {
			return err
		}

		entries, err := a.scanNamespace(txCtx, namespace)
		if err != nil {
			return err
		}

		for _, named := range entries {
			actorWrapped, ok := named.Entry.WrappedKeys[actor]
			if !ok {
				return errors.Wrapf(vaultDomain.ErrNotAuthorized, "%q on %s/%s", actor, namespace, named.Name)
			}

			contentKey, err := a.envelope.UnwrapContentKey(actorWrapped, actorKey)
			if err != nil {
				return errors.Wrapf(err, "%s/%s", namespace, named.Name)
			}
			wrapped, err := a.envelope.WrapContentKey(contentKey, newKey)
			cryptoDomain.Zero(contentKey)
			if err != nil {
				return errors.Wrapf(err, "%s/%s", namespace, named.Name)
			}

			named.Entry.WrappedKeys[newPrincipal] = wrapped
			if err := a.namespaces.Put(txCtx, namespace, named.Name, named.Entry); err != nil {
				return err
			}
			rewrapped++
		}
		return nil
	})
	if err != nil {
		logger.Error("grant aborted", slog.Any("error", err))
		return err
	}

	if superseded {
		logger.Warn("public key superseded; wrapped keys in other namespaces still use the previous key")
	}
	logger.Info("access granted", slog.Int("entries", rewrapped))
	return nil
}

// Revoke removes target from the keyring and from every entry of namespace as one batch.
func (a *accessManager) Revoke(ctx context.Context, namespace, target string) error {
	if err := vaultDomain.ValidateNamespace(namespace); err != nil {
		return err
	}
	if err := vaultDomain.ValidatePrincipalName(target); err != nil {
		return err
	}

	operationID := uuid.Must(uuid.NewV7()).String()
	logger := a.logger.With(
		slog.String("operation_id", operationID),
		slog.String("namespace", namespace),
		slog.String("principal", target),
	)

	var (
		inKeyring bool
		stripped  int
	)
	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		inKeyring, stripped = true, 0

		if err := a.keyring.Delete(txCtx, target); err != nil {
			if !errors.Is(err, vaultDomain.ErrPrincipalNotFound) {
				return err
			}
			inKeyring = false
		}

		entries, err := a.scanNamespace(txCtx, namespace)
		if err != nil {
			return err
		}

		for _, named := range entries {
			if !named.Entry.HasRecipient(target) {
				continue
			}
			if len(named.Entry.WrappedKeys) == 1 {
				return errors.Wrapf(vaultDomain.ErrLastRecipient, "%q on %s/%s", target, namespace, named.Name)
			}

			delete(named.Entry.WrappedKeys, target)
			if err := a.namespaces.Put(txCtx, namespace, named.Name, named.Entry); err != nil {
				return err
			}
			stripped++
		}

		if !inKeyring && stripped == 0 {
			return errors.Wrapf(vaultDomain.ErrPrincipalNotFound, "%q", target)
		}
		return nil
	})
	if err != nil {
		logger.Error("revoke aborted", slog.Any("error", err))
		return err
	}

	logger.Info("access revoked",
		slog.Bool("keyring", inKeyring),
		slog.Int("entries", stripped),
	)
	return nil
}

// ListNamespaces returns the user namespaces.
func (a *accessManager) ListNamespaces(ctx context.Context) ([]string, error) {
	return a.namespaces.ListNamespaces(ctx)
}

// ListEntries returns the entry names of namespace.
func (a *accessManager) ListEntries(ctx context.Context, namespace string) ([]string, error) {
	if err := vaultDomain.ValidateNamespace(namespace); err != nil {
		return nil, err
	}
	return a.namespaces.List(ctx, namespace)
}

// DeleteEntry removes an entry.
func (a *accessManager) DeleteEntry(ctx context.Context, namespace, name string) error {
	if err := validateEntryRef(namespace, name); err != nil {
		return err
	}
	if err := a.namespaces.Delete(ctx, namespace, name); err != nil {
		return err
	}

	a.logger.Info("entry deleted",
		slog.String("namespace", namespace),
		slog.String("entry", name),
	)
	return nil
}

// ListPrincipals returns the keyring's principal names.
func (a *accessManager) ListPrincipals(ctx context.Context) ([]string, error) {
	return a.keyring.Names(ctx)
}

// scanNamespace treats a namespace that was never written as empty.
func (a *accessManager) scanNamespace(ctx context.Context, namespace string) ([]vaultDomain.NamedEntry, error) {
	entries, err := a.namespaces.Scan(ctx, namespace)
	if errors.Is(err, storageDomain.ErrNamespaceMissing) {
		return nil, nil
	}
	return entries, err
}

func validateEntryRef(namespace, name string) error {
	if err := vaultDomain.ValidateNamespace(namespace); err != nil {
		return err
	}
	return vaultDomain.ValidateEntryName(name)
}
