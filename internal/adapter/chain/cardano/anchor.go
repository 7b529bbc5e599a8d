package cardano

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"point-anchor/config"
	"point-anchor/internal/core/ports"
	"point-anchor/pkg/apperror"

	"github.com/blockfrost/blockfrost-go"
	"github.com/rs/zerolog"
)

// Indexer is the slice of the Blockfrost API the anchor adapter uses.
// blockfrost.APIClient satisfies it.
type Indexer interface {
	Address(ctx context.Context, address string) (blockfrost.Address, error)
	AddressUTXOs(ctx context.Context, address string, query blockfrost.APIQueryParams) ([]blockfrost.AddressUTXO, error)
	Transaction(ctx context.Context, hash string) (blockfrost.TransactionContent, error)
	TransactionMetadata(ctx context.Context, hash string) ([]blockfrost.TransactionMetadata, error)
}

// Anchor implements ports.ChainAnchor against the Cardano chain: Blockfrost
// for reads, the signer sidecar for submission.
type Anchor struct {
	indexer Indexer
	signer  *SignerClient
	address string
	minUTXO int64
	log     zerolog.Logger
}

// NewAnchor creates a Cardano anchor adapter from configuration.
func NewAnchor(cfg config.ChainConfig, log zerolog.Logger) *Anchor {
	server := cfg.BlockfrostServer
	if server == "" {
		server = blockfrost.CardanoPreProd
	}
	client := blockfrost.NewAPIClient(blockfrost.APIClientOptions{
		ProjectID: cfg.BlockfrostProjectID,
		Server:    server,
	})
	return &Anchor{
		indexer: client,
		signer:  NewSignerClient(cfg.SignerURL, cfg.SignerAPIKey),
		address: cfg.WalletAddress,
		minUTXO: cfg.MinUTXOLovelace,
		log:     log.With().Str("component", "chain_anchor").Logger(),
	}
}

// NewAnchorWithIndexer wires an explicit indexer; used by tests.
func NewAnchorWithIndexer(indexer Indexer, signer *SignerClient, address string, minUTXO int64, log zerolog.Logger) *Anchor {
	return &Anchor{
		indexer: indexer,
		signer:  signer,
		address: address,
		minUTXO: minUTXO,
		log:     log,
	}
}

// Commit embeds payload as metadata under label in a new transaction and
// returns its hash. The input is the wallet's largest unspent output holding
// at least the configured reserve.
func (a *Anchor) Commit(ctx context.Context, label int64, payload string) (string, error) {
	utxos, err := a.indexer.AddressUTXOs(ctx, a.address, blockfrost.APIQueryParams{})
	if err != nil {
		return "", apperror.ErrAnchorSubmission(fmt.Errorf("fetch unspent outputs: %w", err))
	}

	input, inputLovelace := selectInput(utxos, a.minUTXO)
	if input == nil {
		return "", apperror.ErrNoEligibleUTXO(a.minUTXO)
	}

	a.log.Info().
		Int64("label", label).
		Str("input_tx", input.TxHash).
		Int("input_index", input.OutputIndex).
		Int64("input_lovelace", inputLovelace).
		Msg("Submitting anchor transaction")

	txID, err := a.signer.Anchor(ctx, anchorRequest{
		Label:       label,
		Metadata:    payload,
		Address:     a.address,
		TxHash:      input.TxHash,
		OutputIndex: input.OutputIndex,
	})
	if err != nil {
		return "", apperror.ErrAnchorSubmission(err)
	}

	a.log.Info().Int64("label", label).Str("anchor_tx_id", txID).Msg("Anchor transaction submitted")
	return txID, nil
}

// selectInput returns the largest output holding at least minLovelace, or nil.
func selectInput(utxos []blockfrost.AddressUTXO, minLovelace int64) (*blockfrost.AddressUTXO, int64) {
	var best *blockfrost.AddressUTXO
	var bestLovelace int64
	for i := range utxos {
		lovelace := lovelaceOf(utxos[i].Amount)
		if lovelace >= minLovelace && lovelace > bestLovelace {
			best = &utxos[i]
			bestLovelace = lovelace
		}
	}
	return best, bestLovelace
}

func lovelaceOf(amounts []blockfrost.AddressAmount) int64 {
	for _, amt := range amounts {
		if amt.Unit == "lovelace" {
			v, err := strconv.ParseInt(amt.Quantity, 10, 64)
			if err != nil {
				return 0
			}
			return v
		}
	}
	return 0
}

// WaitForConfirmation polls the indexer until the transaction lands in a
// block or attempts are exhausted. A lookup error means the transaction is
// not yet indexed; polling continues. Exhaustion is false, nil.
func (a *Anchor) WaitForConfirmation(ctx context.Context, anchorTxID string, maxAttempts int, interval time.Duration) (bool, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		txInfo, err := a.indexer.Transaction(ctx, anchorTxID)
		if err == nil && txInfo.Block != "" {
			a.log.Info().
				Str("anchor_tx_id", anchorTxID).
				Str("block", txInfo.Block).
				Msg("Anchor transaction confirmed")
			return true, nil
		}
		a.log.Debug().
			Str("anchor_tx_id", anchorTxID).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Msg("Waiting for confirmation")

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(interval):
		}
	}

	a.log.Warn().Str("anchor_tx_id", anchorTxID).Msg("Anchor confirmation timeout")
	return false, nil
}

// GetMetadata reads back the metadata anchored in a transaction.
func (a *Anchor) GetMetadata(ctx context.Context, anchorTxID string) (*ports.AnchorMetadata, error) {
	entries, err := a.indexer.TransactionMetadata(ctx, anchorTxID)
	if err != nil {
		return nil, apperror.ErrMetadataUnavailable(err)
	}
	if len(entries) == 0 {
		return nil, apperror.ErrMetadataUnavailable(fmt.Errorf("transaction %s carries no metadata", anchorTxID))
	}

	entry := entries[0]
	label, err := strconv.ParseInt(entry.Label, 10, 64)
	if err != nil {
		return nil, apperror.ErrMetadataUnavailable(fmt.Errorf("non-numeric metadata label %q: %w", entry.Label, err))
	}

	var payload string
	switch v := entry.JsonMetadata.(type) {
	case string:
		payload = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, apperror.ErrMetadataUnavailable(fmt.Errorf("marshal metadata payload: %w", err))
		}
		payload = string(raw)
	}

	return &ports.AnchorMetadata{Label: label, Payload: payload}, nil
}

// Address returns the anchor wallet's address.
func (a *Anchor) Address() string {
	return a.address
}

// Balance returns the wallet's spendable lovelace balance.
func (a *Anchor) Balance(ctx context.Context) (int64, error) {
	addr, err := a.indexer.Address(ctx, a.address)
	if err != nil {
		return 0, fmt.Errorf("fetch address %s: %w", a.address, err)
	}
	return lovelaceOf(addr.Amount), nil
}
