/*
Package authsdk provides a client SDK for the Ember authentication service,
plus the wire types and error vocabulary shared between the service's HTTP
handlers and its consumers.

# Usage

Create an SDKClient pointing at the service and run the login flow with an
authorization code obtained from GitHub's redirect:

	client := authsdk.NewSDKClient("https://auth.example.com")

	session, err := client.Login(ctx, code)
	if err != nil {
		// *authsdk.APIError describes what went wrong
	}

	// The bearer token authenticates follow-up calls.
	user, err := client.UserInfo(ctx, session.Token)

Health probes are exposed for orchestration:

	err := client.GetLiveness(ctx)
	err = client.GetReadiness(ctx)
*/
package authsdk
