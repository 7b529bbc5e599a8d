package cardano

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SignerClient talks to the transaction signer sidecar, the only component
// holding the wallet key. It builds, signs, and submits the metadata
// transaction from the input we select.
type SignerClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewSignerClient creates a signer sidecar client.
func NewSignerClient(baseURL, apiKey string) *SignerClient {
	return &SignerClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type anchorRequest struct {
	Label       int64  `json:"label"`
	Metadata    string `json:"metadata"` // hex root hash anchored under the label
	Address     string `json:"address"`  // change address
	TxHash      string `json:"tx_hash"`  // selected input
	OutputIndex int    `json:"output_index"`
}

type anchorResponse struct {
	TxID string `json:"tx_id"`
}

// Anchor asks the sidecar to build, sign, and submit the anchor transaction.
// Returns the on-chain transaction hash.
func (c *SignerClient) Anchor(ctx context.Context, req anchorRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal anchor request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/anchor", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build anchor request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("signer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("signer returned %d: %s", resp.StatusCode, detail)
	}

	var out anchorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode signer response: %w", err)
	}
	if out.TxID == "" {
		return "", fmt.Errorf("signer returned empty transaction id")
	}
	return out.TxID, nil
}
