package app

import (
	"fmt"

	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
)

// Compressor returns the zstd codec applied to payloads before encryption.
func (c *Container) Compressor() (*cryptoService.ZstdCompressor, error) {
	var err error
	c.compressorInit.Do(func() {
		c.compressor, err = cryptoService.NewZstdCompressor()
		if err != nil {
			c.initErrors["compressor"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["compressor"]; exists {
		return nil, storedErr
	}
	return c.compressor, nil
}

// EnvelopeCipher returns the envelope cipher (AES-256-GCM content, RSA-OAEP key wrapping).
func (c *Container) EnvelopeCipher() (cryptoService.EnvelopeCipher, error) {
	var err error
	c.envelopeCipherInit.Do(func() {
		c.envelopeCipher, err = c.initEnvelopeCipher()
		if err != nil {
			c.initErrors["envelopeCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeCipher"]; exists {
		return nil, storedErr
	}
	return c.envelopeCipher, nil
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyPairProvider returns the provider of local principals' key pairs.
func (c *Container) KeyPairProvider() cryptoService.KeyPairProvider {
	c.keyPairProviderInit.Do(func() {
		c.keyPairProvider = cryptoService.NewFileKeyPairProvider(
			cryptoService.KeyPairConfig{
				KeysDir:   c.config.KeysDir,
				KeyBits:   c.config.KeyBits,
				KMSKeyURI: c.config.KMSKeyURI,
			},
			c.KMSService(),
			c.Logger(),
		)
	})
	return c.keyPairProvider
}

func (c *Container) initEnvelopeCipher() (cryptoService.EnvelopeCipher, error) {
	compressor, err := c.Compressor()
	if err != nil {
		return nil, fmt.Errorf("failed to get compressor for envelope cipher: %w", err)
	}

	return cryptoService.NewEnvelopeService(
		cryptoService.NewAEADManager(),
		cryptoService.NewRSAOAEPWrapper(),
		compressor,
	), nil
}
