// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package devicecode

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// AzureProvider performs the grant against the Microsoft identity platform.
// Every Acquire call creates a fresh credential, so exchanges never share
// state.
type AzureProvider struct {
	ClientID string
	TenantID string
	// ClientOptions are passed through to the identity client.
	ClientOptions azcore.ClientOptions
}

var _ Provider = (*AzureProvider)(nil)

func (p *AzureProvider) Acquire(ctx context.Context, scopes []string, prompt PromptFunc) (Token, error) {
	cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
		ClientOptions: p.ClientOptions,
		ClientID:      p.ClientID,
		TenantID:      p.TenantID,
		UserPrompt: func(ctx context.Context, m azidentity.DeviceCodeMessage) error {
			return prompt(ctx, Activation{
				UserCode:        m.UserCode,
				VerificationURL: m.VerificationURL,
				Message:         m.Message,
			})
		},
	})
	if err != nil {
		return Token{}, fmt.Errorf("device code credential: %w", err)
	}
	tok, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: scopes})
	if err != nil {
		return Token{}, err
	}
	return Token{Value: tok.Token, ExpiresOn: tok.ExpiresOn}, nil
}
