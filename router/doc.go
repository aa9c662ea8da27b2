// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ routing.

Routes:

	GET    /health                  liveness check
	POST   /register                create an account
	POST   /token                   exchange credentials for a bearer token
	GET    /users/me                current user (auth)
	POST   /polls                   create a poll (auth)
	GET    /polls                   list polls visible to the viewer (auth)
	PATCH  /polls/{id}/end          owner ends a poll early (auth)
	DELETE /polls/{id}              owner deletes a poll (auth)
	DELETE /polls/{id}/leave        member leaves a poll (auth)
	POST   /join                    join a poll by invite code (auth)
	POST   /vote                    cast a vote (auth)

All authenticated routes run through middleware.RequireAuth and request
logging. The {id} routes rely on method-aware patterns, so DELETE
/polls/{id} and DELETE /polls/{id}/leave coexist without custom matching.
*/
package router
