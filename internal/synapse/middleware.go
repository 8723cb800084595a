package synapse

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/pkg/signature"
)

func isWhitelisted(path string, whitelistedRoutes []string) bool {
	for _, route := range whitelistedRoutes {
		if path == route {
			return true
		}
	}
	return false
}

// ZstdMiddleware decompresses zstd request bodies and compresses responses
// when the caller accepts zstd. Whitelisted routes pass through untouched.
func ZstdMiddleware(whitelistedRoutes []string) fiber.Handler {
	if whitelistedRoutes == nil {
		whitelistedRoutes = []string{HealthRoute}
	}

	return func(c *fiber.Ctx) error {
		if isWhitelisted(c.Path(), whitelistedRoutes) {
			return c.Next()
		}

		contentEncoding := c.Get("content-encoding")
		if strings.ToLower(contentEncoding) == "zstd" {
			body := c.Body()
			if len(body) > 0 {
				decoder, err := zstd.NewReader(bytes.NewReader(body))
				if err != nil {
					log.Err(err).Msg("Failed to create zstd decoder")
					return c.Status(fiber.StatusBadRequest).JSON(
						createResponse(map[string]interface{}{},
							fmt.Errorf("failed to decompress zstd data: %s", err.Error())))
				}
				defer decoder.Close()

				decompressed, err := io.ReadAll(decoder)
				if err != nil {
					log.Err(err).Msg("Failed to decompress request")
					return c.Status(fiber.StatusBadRequest).JSON(
						createResponse(map[string]interface{}{},
							fmt.Errorf("failed to decompress zstd data: %s", err.Error())))
				}

				c.Request().SetBody(decompressed)
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		acceptEncoding := c.Get("accept-encoding")
		if strings.Contains(strings.ToLower(acceptEncoding), "zstd") {
			responseBody := c.Response().Body()
			if len(responseBody) > 0 {
				encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
				if err != nil {
					log.Err(err).Msg("Failed to create zstd encoder")
					return nil
				}
				defer encoder.Close()

				compressed := encoder.EncodeAll(responseBody, nil)
				c.Response().SetBody(compressed)
				c.Set("content-encoding", "zstd")
				c.Set("content-length", fmt.Sprintf("%d", len(compressed)))
			}
		}

		return nil
	}
}

// SignatureMiddleware rejects requests whose identity headers are missing or
// whose sr25519 signature does not verify against the claimed hotkey.
func SignatureMiddleware(signatureVerifier signature.SignatureVerifier, whitelistedRoutes []string) fiber.Handler {
	if whitelistedRoutes == nil {
		whitelistedRoutes = []string{HealthRoute}
	}

	return func(c *fiber.Ctx) error {
		if isWhitelisted(c.Path(), whitelistedRoutes) {
			return c.Next()
		}

		sig := c.Get(SignatureHeader)
		hotkey := c.Get(HotkeyHeader)
		message := c.Get(MessageHeader)

		if hotkey == "" || sig == "" || message == "" {
			errMsg := fmt.Sprintf("%s, missing headers, expected: %s, %s, %s",
				http.StatusText(http.StatusBadRequest),
				SignatureHeader, HotkeyHeader, MessageHeader)
			return c.Status(fiber.StatusBadRequest).JSON(
				createResponse(map[string]interface{}{}, fmt.Errorf("%s", errMsg)))
		}

		isSignatureValid, err := signatureVerifier.Verify(message, sig, hotkey)
		if err != nil {
			errMsg := fmt.Sprintf("Signature verification error: %s", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(
				createResponse(map[string]interface{}{}, fmt.Errorf("%s", errMsg)))
		}

		if !isSignatureValid {
			errMsg := fmt.Sprintf("%s due to invalid signature", http.StatusText(http.StatusForbidden))
			return c.Status(fiber.StatusForbidden).JSON(
				createResponse(map[string]interface{}{}, fmt.Errorf("%s", errMsg)))
		}

		log.Debug().
			Str("hotkey", hotkey).
			Str("path", c.Path()).
			Msg("Verified signature successfully")

		return c.Next()
	}
}
