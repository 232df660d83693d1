package cli

import (
	"context"
	"fmt"
	"time"
)

// RunToken сохраняет bearer token, выданный сервером. Пустой token
// запрашивается интерактивно. С passphrase токен хранится зашифрованным.
func (c *Cli) RunToken(ctx context.Context, token, passphrase string) error {
	c.io.Println("=== Save Token ===")

	if token == "" {
		var err error
		token, err = c.io.ReadPassword("Token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}

	authData, err := c.authService.SaveToken(ctx, token, passphrase)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	c.io.Println("✓ Token saved")
	if authData.Username != "" {
		c.io.Printf("User:    %s\n", authData.Username)
	}
	if authData.ExpiresAt > 0 {
		c.io.Printf("Expires: %s\n", time.Unix(authData.ExpiresAt, 0).Format(time.RFC3339))
	}
	if authData.Encrypted {
		c.io.Println("The token is encrypted, pass the same passphrase to other commands.")
	}
	return nil
}
