/*
Package rbacsdk holds the wire types of the RBAC service and a typed client
for it.

The request types are shared with the server, which decodes every endpoint
into them. Optional fields use OptionalString and OptionalID so that a
present-but-wrong-typed field is rejected while decoding instead of being
silently dropped.

# Client and Session

Client covers the unauthenticated endpoints and logs in:

	client := rbacsdk.NewClient("http://localhost:8080")

	health, err := client.GetLiveness(ctx)

	session, err := client.AuthenticateWithPassword(ctx, "admin", "secret-password")

Session carries the bearer token for the role endpoints:

	created, err := session.CreateRole(ctx, rbacsdk.CreateRoleRequest{
		Name: rbacsdk.String("Viewer"),
	})

	err = session.AssignRole(ctx, userID, created.RoleID)

# Errors

Non-2xx responses are returned as *APIError carrying the status and the
machine code from the body:

	var apiErr *rbacsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == rbacsdk.ErrorCodeConflict {
		// name already taken
	}
*/
package rbacsdk
