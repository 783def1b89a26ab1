// Package invitesdk is a Go client for the Shiftbook invitation service.
//
// It also carries the wire types and error envelope the service itself
// serves, so handlers and clients cannot drift apart.
//
// Basic usage:
//
//	client := invitesdk.NewSDKClient("https://invites.example.com")
//	client.Token = accessToken
//
//	resp, err := client.CreateInvitation(ctx, invitesdk.CreateInvitationRequest{
//		Email: "worker@example.com",
//		Role:  "employee",
//	})
//
// Public endpoints (validate, accept) need no token:
//
//	check, err := client.ValidateInvitation(ctx, tokenFromLink)
//
// Errors returned by the service are *APIError values; branch on the Code
// field or the HTTP status:
//
//	var apiErr *invitesdk.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusGone {
//		// expired or cancelled
//	}
package invitesdk
