package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/piiguard/internal/crypto/domain"
	cryptoService "github.com/allisson/piiguard/internal/crypto/service"
)

// RunCreateStoreKey generates a 32-byte token store key and prints it as environment
// variables. Key material is zeroed from memory after encoding.
//
// With kmsKeyURI set, the key is wrapped by the KMS keeper and the output is:
//   - TOKEN_STORE_KEY="<base64-encoded-kms-ciphertext>"
//   - TOKEN_STORE_KEY_URI="<uri>"
//
// Without it, the plaintext key is printed base64 encoded. Use that only for local
// development.
func RunCreateStoreKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	key, err := cryptoService.GenerateKey()
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(key)

	if kmsKeyURI == "" {
		logger.Warn("store key printed in plaintext; use --kms-key-uri outside local development")

		_, _ = fmt.Fprintln(writer, "# Token Store Key Configuration (plaintext)")
		_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "TOKEN_STORE_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(key))
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	wrapped, err := kmsService.WrapKey(ctx, keeper, key)
	if err != nil {
		return fmt.Errorf("failed to wrap store key with KMS: %w", err)
	}

	logger.Info("store key created", slog.Bool("kms_wrapped", true))

	_, _ = fmt.Fprintln(writer, "# Token Store Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "TOKEN_STORE_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "TOKEN_STORE_KEY=\"%s\"\n", wrapped)
	return nil
}
