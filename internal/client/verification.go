package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// VerificationClient implements webmaster.VerificationClient.
type VerificationClient struct {
	hostScope
}

// NewVerificationClient creates a new verification client.
func NewVerificationClient(httpClient *http.Client, userID int64) *VerificationClient {
	return &VerificationClient{hostScope: newHostScope(httpClient, userID)}
}

// GetStatus implements webmaster.VerificationClient.GetStatus.
func (c *VerificationClient) GetStatus(ctx context.Context, hostID string) (*webmaster.HostVerification, error) {
	path, err := c.hostPath(hostID, "verification")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting verification status: %w", err)
	}

	return decode[webmaster.HostVerification](resp, "verification status")
}

// Verify implements webmaster.VerificationClient.Verify.
func (c *VerificationClient) Verify(ctx context.Context, hostID string, verificationType webmaster.ExplicitVerificationType) (*webmaster.HostVerification, error) {
	if !verificationType.Valid() {
		return nil, fmt.Errorf("%w: unsupported verification type %q", webmaster.ErrInvalidArgument, verificationType)
	}

	path, err := c.hostPath(hostID, "verification")
	if err != nil {
		return nil, err
	}

	query := url.Values{"verification_type": []string{string(verificationType)}}

	resp, err := c.httpClient.Post(ctx, path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("starting verification: %w", err)
	}

	return decode[webmaster.HostVerification](resp, "verification")
}

// ListOwners implements webmaster.VerificationClient.ListOwners.
func (c *VerificationClient) ListOwners(ctx context.Context, hostID string) ([]webmaster.Owner, error) {
	path, err := c.hostPath(hostID, "owners")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}

	owners, err := decode[webmaster.OwnersResponse](resp, "owners")
	if err != nil {
		return nil, err
	}

	return owners.Users, nil
}
